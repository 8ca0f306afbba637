package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           glampd API
// @version         1.0
// @description     HTTP API for accommodation catalogs, progressive grids, and customer sessions.
//
// @contact.name   glampd maintainers
// @contact.url    https://github.com/your-org/glampd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
