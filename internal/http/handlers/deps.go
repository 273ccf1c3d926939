package handlers

import (
	"github.com/rs/zerolog"

	"sheetshop/internal/services"
)

type Deps struct {
	ProductHandler *ProductHandler
	AdminHandler   *AdminHandler
}

func NewDeps(catalog *services.CatalogService, sync *services.SyncService, log zerolog.Logger) *Deps {
	return &Deps{
		ProductHandler: &ProductHandler{Catalog: catalog, Log: log},
		AdminHandler:   &AdminHandler{Catalog: catalog, Sync: sync, Log: log},
	}
}
