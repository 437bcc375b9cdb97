package controller

import (
	"github.com/ougirez/coviddash/internal/service/query"
)

type Controller struct {
	service *query.Service
}

func NewController(service *query.Service) *Controller {
	return &Controller{service: service}
}
