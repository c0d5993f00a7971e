package server

//go:generate swag init -g internal/server/swagger.go -o docs/swagger

// @title Labelboard API
// @version 0.1
// @description Page host for the record label table: server-side renders, render history and the click websocket.
// @contact.name Labelboard Maintainers
// @contact.url https://github.com/raysh454/labelboard
// @BasePath /
