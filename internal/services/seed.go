package services

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
)

// Initialize seeds an empty dataset: the permanent administrator and the
// four demo products the shop opens with. Safe to run on every start.
func Initialize(st *station.Station) error {
	return st.Update(func(r *domain.Record) error {
		seeded := false
		if len(r.Users) == 0 {
			r.Users = append(r.Users, domain.User{
				ID:             1,
				Name:           "Administrador Sistema",
				Username:       "admin",
				Password:       "admin123",
				IsAdmin:        true,
				SecretQuestion: "pet",
				SecretAnswer:   "rex",
			})
			seeded = true
		}
		if len(r.Products) == 0 {
			r.Products = append(r.Products,
				domain.Product{ID: 1, Code: "001", Name: "Café Puro",
					Description: "Café preparado com grãos classe 1 moído na hora",
					Price:       decimal.NewFromFloat(9.00), Stock: 5, Active: true},
				domain.Product{ID: 2, Code: "002", Name: "Água de coco",
					Description: "Água de coco em garrafa 200ML",
					Price:       decimal.NewFromFloat(8.00), Stock: 20, Active: true},
				domain.Product{ID: 3, Code: "003", Name: "Frango Assado inteiro",
					Description: "Frango assado inteiro, o melhor tempero, sabor Beulah",
					Price:       decimal.NewFromFloat(55.00), Stock: 70, Active: true},
				domain.Product{ID: 4, Code: "004", Name: "Coxa de Frango Assado",
					Description: "10 coxas de frango assado, melhor tempero, sabor Beulah",
					Price:       decimal.NewFromFloat(55.00), Stock: 30, Active: true},
			)
			seeded = true
		}
		if seeded {
			zap.S().Infof("seeded initial users/products")
		}
		return nil
	})
}
