package model

import "github.com/golang-jwt/jwt/v5"

type CentrifugoEvent struct {
	Method string                `json:"method"`
	Params CentrifugoEventParams `json:"params"`
}

type CentrifugoEventParams struct {
	Channel string      `json:"channel"`
	Data    interface{} `json:"data"`
}

type SessionClaims struct {
	jwt.RegisteredClaims
}

type CentrifugoConnectClaims struct {
	jwt.RegisteredClaims
}

type CentrifugoSubscribeClaims struct {
	jwt.RegisteredClaims

	// Centrifugo specific fields
	Channel string `json:"channel"`
	Client  string `json:"client,omitempty"`

	// Custom fields for channel authorization
	UserID string `json:"user_id"`
}
