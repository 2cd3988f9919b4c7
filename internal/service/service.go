package service

import (
	"github.com/MosinFAM/grams/internal/errs"
	"github.com/MosinFAM/grams/internal/models"
	"github.com/MosinFAM/grams/internal/storage"

	"github.com/pkg/errors"
)

// MaxMessageLength - предельная длина сообщения грама и комментария
const MaxMessageLength = 2000

// CanModify - может ли пользователь менять и удалять грам. Только владелец.
func CanModify(actor *models.User, gram *models.Gram) bool {
	return gram.OwnedBy(actor)
}

// notFound переводит отсутствие записи в 404, прочие ошибки хранилища уходят наружу как 500
func notFound(err error, message string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return errs.NewNotFoundError(message)
	}
	return errors.Wrap(err, "storage")
}
