package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/teamcity-go/teamcity-client/internal/constants"
	"github.com/teamcity-go/teamcity-client/pkg/tcclient"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"
)

// createClient builds a TeamCity client from the active viper settings.
// Unset fields fall through to the TEAMCITY_* environment variables inside
// the client constructor.
func createClient() (teamcity.Client, error) {
	config := &teamcity.Config{
		ServerURL:      viper.GetString("server"),
		Token:          viper.GetString("token"),
		Username:       viper.GetString("user"),
		Password:       viper.GetString("password"),
		Guest:          viper.GetBool("guest"),
		RequestTimeout: constants.DefaultHTTPTimeout,
	}

	if viper.GetBool("verbose") {
		config.Logger = newConsoleLogger()
	}

	client, err := tcclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// consoleLogger adapts zerolog to the client's logger interface.
type consoleLogger struct {
	logger zerolog.Logger
}

func newConsoleLogger() *consoleLogger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}

	return &consoleLogger{
		logger: zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel),
	}
}

func (l *consoleLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *consoleLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *consoleLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *consoleLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}

// renderStructured writes data as JSON or YAML when the output flag asks for
// either. The boolean reports whether the data was handled.
func renderStructured(data interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return true, fmt.Errorf("encoding to JSON: %w", err)
		}

		return true, nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(data)
		if err != nil {
			return true, fmt.Errorf("encoding to YAML: %w", err)
		}

		return true, nil
	default:
		return false, nil
	}
}

func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
