// Package docs registra el documento OpenAPI de la API en swag.
// Regenerar con: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Registrar usuario (signType credential, rol user)"}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Iniciar sesión con email y password"}},
        "/api/auth/google": {"post": {"tags": ["auth"], "summary": "Iniciar sesión con un ID token de Google"}},
        "/api/me": {
            "get": {"security": [{"Bearer": []}], "tags": ["me"], "summary": "Perfil del usuario autenticado"},
            "patch": {"security": [{"Bearer": []}], "tags": ["me"], "summary": "Actualizar nombre y teléfono"}
        },
        "/api/me/password": {"put": {"security": [{"Bearer": []}], "tags": ["me"], "summary": "Cambiar contraseña"}},
        "/api/me/avatar": {"post": {"security": [{"Bearer": []}], "tags": ["me"], "summary": "Subir foto de perfil"}},
        "/api/products": {"get": {"tags": ["products"], "summary": "Listar productos del catálogo"}},
        "/api/products/categories": {"get": {"tags": ["products"], "summary": "Categorías presentes en el catálogo"}},
        "/api/products/slug/{slug}": {"get": {"tags": ["products"], "summary": "Obtener producto por slug"}},
        "/api/products/{id}": {"get": {"tags": ["products"], "summary": "Obtener producto por ID"}},
        "/api/contacts": {"post": {"tags": ["contacts"], "summary": "Enviar mensaje de contacto"}},
        "/api/recaptcha": {"post": {"tags": ["recaptcha"], "summary": "Verificar un token reCAPTCHA"}},
        "/api/chat/gemini": {"post": {"tags": ["chat"], "summary": "Asistente público (Gemini)", "produces": ["text/event-stream"]}},
        "/api/chat/groq": {"post": {"tags": ["chat"], "summary": "Asistente público (Groq)", "produces": ["text/event-stream"]}},
        "/api/chat/manajemen-servis": {"post": {"security": [{"Bearer": []}], "tags": ["chat"], "summary": "Asistente del personal de servicio", "produces": ["text/event-stream"]}},
        "/api/service-requests": {"post": {"security": [{"Bearer": []}], "tags": ["service-requests"], "summary": "Registrar solicitud de servicio", "consumes": ["multipart/form-data"]}},
        "/api/service-requests/me": {"get": {"security": [{"Bearer": []}], "tags": ["service-requests"], "summary": "Historial de solicitudes propias"}},
        "/api/service-requests/{id}": {"get": {"security": [{"Bearer": []}], "tags": ["service-requests"], "summary": "Recibo de una solicitud"}},
        "/api/service-requests/{id}/receipt.pdf": {"get": {"security": [{"Bearer": []}], "tags": ["service-requests"], "summary": "Recibo en PDF", "produces": ["application/pdf"]}},
        "/api/dashboard/summary": {"get": {"security": [{"Bearer": []}], "tags": ["dashboard"], "summary": "Contadores del panel principal"}},
        "/api/dashboard/activities": {"get": {"security": [{"Bearer": []}], "tags": ["dashboard"], "summary": "Feed de actividad reciente"}},
        "/api/dashboard/services": {"get": {"security": [{"Bearer": []}], "tags": ["dashboard"], "summary": "Panel de servicios agrupado por estado"}},
        "/api/dashboard/services/{id}/status": {"patch": {"security": [{"Bearer": []}], "tags": ["dashboard"], "summary": "Cambiar el estado de una solicitud"}},
        "/api/dashboard/products": {"post": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Crear producto"}},
        "/api/dashboard/products/images": {"post": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Subir imagen de producto"}},
        "/api/dashboard/products/{id}": {
            "patch": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Actualizar producto"},
            "delete": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Eliminar producto"}
        },
        "/api/dashboard/products/{id}/stock": {"put": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Actualizar stock"}},
        "/api/dashboard/users": {"get": {"security": [{"Bearer": []}], "tags": ["users"], "summary": "Listar usuarios"}},
        "/api/dashboard/users/{id}/role": {"patch": {"security": [{"Bearer": []}], "tags": ["users"], "summary": "Cambiar rol de un usuario"}},
        "/api/dashboard/users/{id}": {"delete": {"security": [{"Bearer": []}], "tags": ["users"], "summary": "Eliminar usuario"}},
        "/api/dashboard/contacts": {"get": {"security": [{"Bearer": []}], "tags": ["contacts"], "summary": "Buzón de mensajes"}},
        "/api/dashboard/contacts/{id}": {"delete": {"security": [{"Bearer": []}], "tags": ["contacts"], "summary": "Eliminar mensaje"}}
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Escribir \"Bearer\" seguido de un espacio y el token JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo información exportada del documento; cmd/api ajusta Host al arrancar.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PUSCOM API",
	Description:      "Catálogo, solicitudes de servicio, paneles y asistentes de chat de PUSCOM.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
