package model

import "time"

type Item struct {
	Title      string
	Link       string
	Summary    string
	SourceName string
	Categories []string
	Date       time.Time
}

type Story struct {
	Headline string   `json:"headline"`
	Link     string   `json:"link"`
	Bullets  []string `json:"bullets"`
}
