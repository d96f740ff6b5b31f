/*
Copyright © 2026 Marc Winters <mwinters@posteo.net>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Room lookup failures surfaced to the requesting connection. The
// messages are shown to players verbatim.
var (
	errRoomNotFound   = errors.New("Room not found!")
	errRoomFull       = errors.New("Room is full!")
	errGameInProgress = errors.New("Game already in progress!")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
