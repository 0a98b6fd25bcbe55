package handlers

import (
	"beulahpos/internal/config"
	"beulahpos/internal/services"
	"beulahpos/internal/station"
	"beulahpos/internal/store"
)

type Deps struct {
	AuthHandler   *AuthHandler
	SaleHandler   *SaleHandler
	ClientHandler *ClientHandler
	AdminHandler  *AdminHandler
	MenuHandler   *MenuHandler

	Auth *services.AuthService
}

// NewDeps wires the three stations' services into handlers. pos and
// admin own the full record; menu owns only clients and sales.
func NewDeps(st *store.Store, cfg config.Config, pos, admin, menu *station.Station) *Deps {
	userSvc := services.NewUserService(pos)
	authSvc := services.NewAuthService(userSvc)
	prodSvc := services.NewProductService(pos)
	clientSvc := services.NewClientService(pos)
	saleSvc := services.NewSaleService(pos)

	adminProdSvc := services.NewProductService(admin)
	expenseSvc := services.NewExpenseService(admin)
	reportSvc := services.NewReportService(admin)
	adminUserSvc := services.NewUserService(admin)
	adminSaleSvc := services.NewSaleService(admin)

	menuSvc := services.NewMenuService(menu, cfg.WhatsAppNumber)

	return &Deps{
		AuthHandler:   &AuthHandler{Auth: authSvc, Users: userSvc},
		SaleHandler:   &SaleHandler{Sales: saleSvc, Products: prodSvc, Auth: authSvc},
		ClientHandler: &ClientHandler{Clients: clientSvc},
		AdminHandler: &AdminHandler{
			Products: adminProdSvc,
			Expenses: expenseSvc,
			Reports:  reportSvc,
			Users:    adminUserSvc,
			Sales:    adminSaleSvc,
			Store:    st,
		},
		MenuHandler: &MenuHandler{Menu: menuSvc},
		Auth:        authSvc,
	}
}
