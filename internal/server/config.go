package server

import (
	"github.com/raysh454/labelboard/internal/app"
	"github.com/raysh454/labelboard/internal/logging"
)

type Config struct {
	// ListenAddr is the HTTP listen address of the page host.
	ListenAddr string

	// App supplies the config, web client and render journal.
	App *app.Application

	Logger logging.Logger
}
