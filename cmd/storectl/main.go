package main

import "github.com/Apurer/henri-storefront/internal/app/storectl"

func main() {
	storectl.Execute()
}
