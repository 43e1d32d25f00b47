package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// AppField - поле с именем приложения в каждой записи
const AppField = "app"

// New создает логгер с заданным уровнем и форматом (json или text).
// Непустой app добавляется к каждой записи.
func New(logLevel, format, app string) *logrus.Logger {
	log := logrus.New()

	if strings.EqualFold(format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	log.SetOutput(os.Stdout)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)

	if app != "" {
		log.AddHook(appHook{app: app})
	}
	return log
}

type appHook struct {
	app string
}

func (h appHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h appHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data[AppField]; !ok {
		entry.Data[AppField] = h.app
	}
	return nil
}
