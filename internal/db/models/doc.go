// Package models contains the database model definitions of the shop.
package models
