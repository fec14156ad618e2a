// Package docs provides Swagger documentation for the API.
package docs

// @title Muhajir Foundation API
// @version 1.0
// @description Public content, donation campaigns and bot access for the Muhajir Foundation
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@muhajir.org

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by the token from /api/v1/auth/token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description Sent together with x-api-signature, the hex HMAC-SHA256 of the agreed payload
