package main

import (
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/libprohq/libpro"
	"github.com/sirupsen/logrus"
)

type uiApp struct {
	catalog    *libpro.Catalog
	members    *libpro.Membership
	feed       *liveFeed
	board      *requestBoard
	logger     *logrus.Entry
	cfg        configuration
	mqttClient mqtt.Client
}

type bookResponse struct {
	Books      libpro.BookList `json:"books"`
	TotalCount int             `json:"total"`
}
