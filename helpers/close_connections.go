package helpers

import (
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/sirupsen/logrus"
)

func HandleCloseConnections() error {
	if config.GetConfig() == nil {
		return nil
	}

	// flush and close logger hooks
	logrus.Exit(0)

	return nil
}
