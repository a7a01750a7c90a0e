//go:build wireinject
// +build wireinject

package factory

import (
	"context"

	"github.com/google/wire"
	"github.com/shanmugapriya39/globalytix-app/pkg/audio"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/media"
	"github.com/shanmugapriya39/globalytix-app/pkg/models"
	synthesisservice "github.com/shanmugapriya39/globalytix-app/pkg/services/synthesis"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech/providers"
)

// build the dependency set for services
var serviceSet = wire.NewSet(
	provideRegistry,
	provideMetrics,
	provideMetricsServer,
	provideAudioContext,
	providers.NewSuite,
	provideSynthesizer,
	synthesisservice.NewDispatcher,
)

// build the dependency set for models
var modelSet = wire.NewSet(
	audio.NewRecorder,
	media.NewEncoder,
	models.NewSessionModel,
)

// NewAppFactory is the injector function that wire will implement.
func NewAppFactory(ctx context.Context, appConfig *config.AppConfig) (*Application, error) {
	wire.Build(
		serviceSet,
		modelSet,
		// Provide the whole AppConfig, and also specific fields needed by constructors.
		wire.FieldsOf(new(*config.AppConfig), "Logger"),

		wire.Struct(new(Application), "*"),
	)
	return nil, nil // This return value is ignored.
}
