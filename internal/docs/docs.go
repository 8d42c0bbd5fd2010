// Package docs registra a especificação Swagger 2.0 da API no registro do swag,
// de onde o http-swagger serve /swagger/doc.json.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo guarda as informações exportadas da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "GoCorretora API",
	Description:      "Back office de corretora de imóveis: usuários, proprietários, corretores, imóveis e transações.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
