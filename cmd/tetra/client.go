package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const batchSize = 300

// cell mirrors the /drawcells wire format.
type cell struct {
	X  int      `json:"x"`
	Y  int      `json:"y"`
	Ch string   `json:"ch"`
	Fg [3]uint8 `json:"fg"`
	Bg [3]uint8 `json:"bg"`
}

// client talks to a pixeld instance.
type client struct {
	http *resty.Client
}

func newClient(base string) *client {
	return &client{
		http: resty.New().
			SetBaseURL(base).
			SetTimeout(3 * time.Second),
	}
}

func (c *client) gridSize() (w, h int, err error) {
	var size struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	resp, err := c.http.R().SetResult(&size).Get("/size")
	if err != nil {
		return 0, 0, err
	}
	if resp.IsError() {
		return 0, 0, fmt.Errorf("GET /size: %s", resp.Status())
	}
	return size.Width, size.Height, nil
}

func (c *client) clear() error {
	_, err := c.http.R().SetBody(map[string]any{}).Post("/clear")
	return err
}

// sendCells ships the cells, split into server-friendly batches. Transport
// errors are swallowed; a dropped frame just means the next one wins.
func (c *client) sendCells(cells []cell) {
	for len(cells) > 0 {
		n := min(len(cells), batchSize)
		c.http.R().
			SetBody(map[string]any{"cells": cells[:n]}).
			Post("/drawcells")
		cells = cells[n:]
	}
}
