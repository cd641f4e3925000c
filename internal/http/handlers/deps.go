package handlers

import (
	"onestop/internal/catalog"
	"onestop/internal/config"
	"onestop/internal/repos"
	"onestop/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler  *ProductHandler
	ChatHandler     *ChatHandler
	DeliveryHandler *DeliveryHandler
	HealthHandler   *HealthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, cat *catalog.Catalog, gen services.Generator) *Deps {
	chatRepo := repos.NewChatRepo(db)

	chatSvc := services.NewChatService(cat, chatRepo, gen, cfg.DefaultSlug, cfg.MaxMessageRunes)
	deliverySvc := services.NewDeliveryService()

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: cat, DefaultSlug: cfg.DefaultSlug, Model: gen.Model()},
		ChatHandler:     &ChatHandler{Chat: chatSvc, DefaultSlug: cfg.DefaultSlug, Limit: cfg.HistoryLimit, MaxLimit: cfg.HistoryMax},
		DeliveryHandler: &DeliveryHandler{Delivery: deliverySvc},
		HealthHandler:   &HealthHandler{History: chatRepo},
	}
}
