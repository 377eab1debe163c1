package main

// @title Kipharma Platform API
// @version 1.0
// @description Multi-branch pharmacy platform: products, stock, branches, staff, notifications and the public marketing site.

// @contact.name API Support
// @contact.email support@kipharma.com

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Portal authentication endpoints

// @tag.name Products
// @tag.description Product and stock management

// @tag.name Branches
// @tag.description Branch management

// @tag.name Notifications
// @tag.description Alerts and notifications

// @tag.name Health
// @tag.description Health check endpoints
