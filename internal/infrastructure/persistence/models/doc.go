// Package models contains the GORM persistence models. They are kept apart
// from domain entities so that the domain layer carries no ORM tags; each
// model has ToDomain and *FromDomain mappers used by the repositories.
package models
