package helpers

import (
	"errors"
	"fmt"
	"os"

	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"gopkg.in/yaml.v3"
)

func PrepareServer(appCnf *config.AppConfig) error {
	// the fake backend needs its scripted source before anything boots
	if appCnf.Capture.Backend == config.FakeCaptureBackend {
		if appCnf.Capture.FakeWavFile == "" {
			return errors.New("fake capture backend requires capture.fake_wav_file")
		}
		if _, err := os.Stat(appCnf.Capture.FakeWavFile); err != nil {
			return fmt.Errorf("fake capture source: %w", err)
		}
	}

	if appCnf.SpeechServices.SubscriptionKey == "" {
		return errors.New("speech_services.subscription_key is required")
	}

	return nil
}

func ReadYamlConfigFile(cnfFile string) (*config.AppConfig, error) {
	return readYaml(cnfFile)
}

func readYaml(filename string) (*config.AppConfig, error) {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	appCnf := new(config.AppConfig)
	err = yaml.Unmarshal(yamlFile, &appCnf)
	if err != nil {
		return nil, err
	}

	// get current working dir
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// set the root path
	appCnf.RootWorkingDir = wd

	return appCnf, err
}
