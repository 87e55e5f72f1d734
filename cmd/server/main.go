package main

import "github.com/init-pkg/sheet-loader/internal/bootstrap"

//	@title			sheet-loader API
//	@version		1.0
//	@description	Uploads spreadsheets and loads their rows into relational tables.
//	@BasePath		/
func main() {
	bootstrap.Run()
}
