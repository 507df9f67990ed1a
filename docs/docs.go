// Package docs registra la especificación OpenAPI de la API en swag.
// El archivo swagger.json de este directorio es el que sirve la UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Registrar restaurante",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/auth/profile": {
            "get": {
                "tags": ["auth"],
                "summary": "Perfil del usuario autenticado",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["auth"],
                "summary": "Actualizar perfil",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/change-password": {
            "put": {
                "tags": ["auth"],
                "summary": "Cambiar contraseña",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/menus": {
            "post": {
                "tags": ["menus"],
                "summary": "Crear el menú del restaurante",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/menus/my-menu": {
            "get": {
                "tags": ["menus"],
                "summary": "Menú del tenant (panel de administración)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/menus/{id}": {
            "get": {
                "tags": ["public"],
                "summary": "Menú público por ID",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["menus"],
                "summary": "Actualizar el menú",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["menus"],
                "summary": "Eliminar el menú",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/menus/{id}/qr.pdf": {
            "get": {
                "tags": ["menus"],
                "summary": "Afiche PDF con el QR del menú",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/menus/{id}/categories": {
            "get": {
                "tags": ["public"],
                "summary": "Categorías activas del menú público",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "tags": ["menus"],
                "summary": "Agregar categoría",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/menus/{id}/categories/{categoryId}": {
            "put": {
                "tags": ["menus"],
                "summary": "Actualizar categoría",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["menus"],
                "summary": "Eliminar categoría",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/menus/{id}/items": {
            "post": {
                "tags": ["menus"],
                "summary": "Agregar item",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/menus/{id}/items/{itemId}": {
            "put": {
                "tags": ["menus"],
                "summary": "Actualizar item",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["menus"],
                "summary": "Eliminar item",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/menus/restaurant/{restaurantId}": {
            "get": {
                "tags": ["public"],
                "summary": "Menú público por slug de restaurante",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/menus/restaurant/{restaurantId}/admin": {
            "get": {
                "tags": ["menus"],
                "summary": "Menú sin filtrar de un restaurante (panel de administración)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/whatsapp/config": {
            "get": {
                "tags": ["whatsapp"],
                "summary": "Configuración de WhatsApp del tenant",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["whatsapp"],
                "summary": "Actualizar configuración de WhatsApp",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/whatsapp/send-menu-link": {
            "post": {
                "tags": ["whatsapp"],
                "summary": "Enviar el link del menú por WhatsApp",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/whatsapp/upload-status": {
            "post": {
                "tags": ["whatsapp"],
                "summary": "Publicar una imagen en el estado de WhatsApp",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/whatsapp/webhook": {
            "get": {
                "tags": ["whatsapp"],
                "summary": "Verificación del webhook de Meta",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "tags": ["whatsapp"],
                "summary": "Recepción de eventos del webhook",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo mantiene la información exportada de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MenuQR API",
	Description:      "API multi-tenant de menús digitales con QR, Cloudinary y WhatsApp Business.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
