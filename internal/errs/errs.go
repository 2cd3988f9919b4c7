// Package errs описывает ошибки, которые сервисы возвращают наружу.
//
// Каждая ошибка знает свой HTTP-статус, а ошибка аутентификации несёт
// подсказку-действие: перенаправить на страницу входа.
package errs
