package service

import (
	"errors"

	"github.com/benbeisheim/szachy-backend/internal/model"
	"github.com/benbeisheim/szachy-backend/internal/store"
)

var (
	ErrGameNotFound   = store.ErrNotFound
	ErrGameFull       = model.ErrGameFull
	ErrAlreadyQueued  = model.ErrAlreadyQueued
	ErrNotParticipant = errors.New("not a participant in this game")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameNotActive  = errors.New("game is not active")
	ErrInvalidColor   = errors.New("invalid color")
)
