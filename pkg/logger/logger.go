package logger

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	once        sync.Once
	initialized = false
	appName     = ""
)

// InitLogger initializes the logger with the given app name and log level
// This can be used when you want to initialize the logger with config file
func InitLogger(appName, logLevel string) {
	if len(appName) == 0 {
		panic("Application name is not set!")
	}
	if len(logLevel) == 0 {
		log.Warn().Msg("Log level not set, defaulting to WARN")
		logLevel = "WARN"
	}

	initLogger(appName, logLevel)
}

// Init initializes the logger by fetching the log level and app name from the viper configuration
func Init() {
	appName = viper.GetString("APP_NAME")
	logLevel := viper.GetString("APP_LOG_LEVEL")

	if len(appName) == 0 {
		panic("APP_NAME is not set!")
	}
	if len(logLevel) == 0 {
		panic("APP_LOG_LEVEL is not set!")
	}
	InitLogger(appName, logLevel)
}

func initLogger(appName, logLevel string) {
	if initialized {
		log.Debug().Msgf("Logger already initialized!")
		return
	}
	once.Do(func() {
		setLogLevel(logLevel)

		log.Logger = log.With().
			Caller().
			Str("processInfo", fmt.Sprintf("- [%d, ] -", os.Getpid())).
			Logger()

		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:           os.Stdout,
			NoColor:       true,
			TimeFormat:    "2006-01-02 15:04:05.000",
			FormatLevel:   func(i interface{}) string { return strings.ToUpper(fmt.Sprintf("- [%-5s] -", i)) },
			FormatCaller:  func(i interface{}) string { return fmt.Sprintf("%s", i) },
			FormatMessage: func(i interface{}) string { return fmt.Sprintf("%s", i) },
			FieldsExclude: []string{
				"processInfo",
			},
			PartsOrder: []string{
				zerolog.TimestampFieldName,
				zerolog.LevelFieldName,
				zerolog.CallerFieldName,
				"processInfo",
				zerolog.MessageFieldName,
			},
		})

		// enable logging caller
		log.Logger = log.With().Caller().Logger()

		// As a standard practice, we are logging [file_name:method_name:line_number], as method name is not available
		// we are logging [file_name::line_number]
		zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
			parts := strings.Split(file, "/")
			if len(parts) == 1 {
				return fmt.Sprintf("[%s::%d]", parts[0], line)
			}
			return fmt.Sprintf("[%s::%d]", parts[len(parts)-1], line)
		}

		// add stack trace to error
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			return fmt.Sprintf("%s\n%s", err, debug.Stack())
		}

		initialized = true
		log.Info().Msg("Logger initialized!")
	})
}

// Sets the log level
func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "INFO":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "FATAL":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "PANIC":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "DISABLED":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		log.Panic().Msgf("Incorrect log level - %s", logLevel)
	}
}
