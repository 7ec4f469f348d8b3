// Package login provides HTTP handlers and helpers for administrator authentication.
//
// This file defines the messages shown by the login flow.
package login

const (
	// MsgMissingFields is shown when username or password is empty.
	MsgMissingFields = "Veuillez remplir tous les champs"

	// MsgInvalidCredentials is shown for unknown accounts and wrong passwords alike.
	MsgInvalidCredentials = "Email ou mot de passe incorrect"

	// MsgAccountDisabled is shown when the account exists but is disabled.
	MsgAccountDisabled = "Ce compte est désactivé"

	// MsgInvalidFormData is shown when the submitted form can not be parsed.
	MsgInvalidFormData = "Formulaire invalide"

	// MsgUnexpected is shown for unexpected failures during the login process.
	MsgUnexpected = "Erreur de connexion inattendue"
)
