package constants

type ContextKey string

const UserContextKey ContextKey = "user"
