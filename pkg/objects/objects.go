package objects

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/chatapp/pkg/contracts"
)

var (
	Registrar  contracts.Registrar
	Config     contracts.Config
	ViewEngine fiber.Views
	Layout     string
)
