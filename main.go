package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shanmugapriya39/globalytix-app/helpers"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/factory"
	"github.com/shanmugapriya39/globalytix-app/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const version = "1.0.0"

func main() {
	cli.VersionPrinter = func(c *cli.Command) {
		fmt.Printf("%s\n", c.Version)
	}

	app := &cli.Command{
		Name:        "globalytix",
		Usage:       "speech capture and translation pipeline",
		Description: "without subcommand will record one utterance and translate it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Configuration file",
				DefaultText: "config.yaml",
				Value:       "config.yaml",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Spoken language tag, or auto to detect",
				Value: "auto",
			},
			&cli.StringSliceFlag{
				Name:  "target",
				Usage: "Target language code, repeatable",
				Value: []string{"es"},
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "File to write the synthesized audio to",
				Value: "translated-audio",
			},
			&cli.StringFlag{
				Name:  "fake-wav",
				Usage: "Feed a WAV file through the fake capture backend instead of the microphone",
			},
		},
		Action:  recordAndTranslate,
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "say",
				Usage: "synthesize a piece of text directly",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Usage: "Text to speak", Required: true},
					&cli.StringFlag{Name: "voice", Usage: "Synthesis voice, defaults to the configured voice map"},
					&cli.StringFlag{Name: "locale", Usage: "Synthesis locale", Value: "en-US"},
					&cli.StringFlag{Name: "out", Usage: "File to write the audio to", Value: "spoken-audio"},
				},
				Action: say,
			},
			{
				Name:   "voices",
				Usage:  "list the configured voice mappings",
				Action: voices,
			},
		},
	}
	err := app.Run(context.Background(), os.Args)
	if err != nil {
		logrus.Fatalln(err)
	}
}

func prepareApp(ctx context.Context, c *cli.Command) (*factory.Application, error) {
	appCnf, err := helpers.ReadYamlConfigFile(c.String("config"))
	if err != nil {
		return nil, err
	}
	if fakeWav := c.String("fake-wav"); fakeWav != "" {
		appCnf.Capture.Backend = config.FakeCaptureBackend
		appCnf.Capture.FakeWavFile = fakeWav
	}

	// set this config for global usage
	if _, err = config.New(appCnf); err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(&appCnf.LogSettings)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to setup logger")
	}
	appCnf.Logger = logger

	// now prepare our pipeline
	if err = helpers.PrepareServer(config.GetConfig()); err != nil {
		return nil, err
	}

	appFactory, err := factory.NewAppFactory(ctx, appCnf)
	if err != nil {
		return nil, err
	}

	// boot up some services
	appFactory.Boot()

	return appFactory, nil
}

func recordAndTranslate(ctx context.Context, c *cli.Command) error {
	app, err := prepareApp(ctx, c)
	if err != nil {
		return err
	}
	defer helpers.HandleCloseConnections()
	defer app.Shutdown()
	logger := app.AppConfig.Logger

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		sig := <-sigChan
		logger.Infof("exit requested on %s, stopping capture", sig)
		app.Session.StopRecording()
	}()

	go func() {
		for ev := range app.Session.Events() {
			if ev.Err != nil {
				logger.Warnf("session state: %s (%s)", ev.State, ev.Message)
				continue
			}
			logger.Infof("session state: %s", ev.State)
		}
	}()

	result, err := app.Session.RecordAndTranslate(ctx, c.String("lang"), c.StringSlice("target"))
	if err != nil {
		return err
	}

	fmt.Printf("heard (%s): %s\n", result.DetectedLanguage, result.OriginalText)
	for _, tr := range result.Translations {
		fmt.Printf("%s: %s\n", tr.Code, tr.Text)
	}

	out := outputFileName(c.String("out"), result.ContentType)
	if err = os.WriteFile(out, result.Audio, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %d bytes of %s to %s\n", len(result.Audio), result.ContentType, out)
	return nil
}

func say(ctx context.Context, c *cli.Command) error {
	app, err := prepareApp(ctx, c)
	if err != nil {
		return err
	}
	defer helpers.HandleCloseConnections()
	defer app.Shutdown()

	locale := c.String("locale")
	voice := c.String("voice")
	if voice == "" {
		voice = app.AppConfig.SpeechServices.GetVoiceFor(locale)
	}

	result, err := app.Dispatcher.Synthesize(ctx, c.String("text"), voice, locale)
	if err != nil {
		return err
	}

	out := outputFileName(c.String("out"), result.ContentType)
	if err = os.WriteFile(out, result.Audio, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %d bytes of %s to %s (%d cached results)\n",
		len(result.Audio), result.ContentType, out, app.Dispatcher.CacheLen())
	return nil
}

func voices(_ context.Context, c *cli.Command) error {
	appCnf, err := helpers.ReadYamlConfigFile(c.String("config"))
	if err != nil {
		return err
	}
	if _, err = config.New(appCnf); err != nil {
		return err
	}

	fmt.Printf("default voice: %s\n", appCnf.SpeechServices.DefaultVoice)
	for locale, voice := range appCnf.SpeechServices.VoiceMap {
		fmt.Printf("%s: %s\n", locale, voice)
	}
	return nil
}

func outputFileName(base, contentType string) string {
	switch contentType {
	case "audio/mpeg":
		return base + ".mp3"
	case "audio/wav":
		return base + ".wav"
	default:
		return base + ".bin"
	}
}
