package usecase

import "errors"

// ErrPersistence indicates a store failure inside a use case.
var ErrPersistence = errors.New("chat use case: persistence error")

// ErrCompletion indicates the completion service failed or returned a
// malformed reply.
var ErrCompletion = errors.New("chat use case: completion error")
