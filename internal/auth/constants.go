package auth

const (
	ContextKeyPrincipal = "principal"

	headerAuthorization = "Authorization"

	bearerScheme = "bearer"
	TokenType    = "Bearer"
)

const (
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenRejectedFmt        = "token rejected: %v"
	msgRoleDeniedFmt           = "role check failed for %q: %v"
	msgAccessRestrictedFmt     = "Access restricted to %s role."
	msgRoleSeparator           = " or "
	msgGuardNeedsRole          = "auth: RequireRole needs at least one role"
	msgIssueIncomplete         = "cannot issue token: principal needs a username and a role"
	msgSignTokenFailedFmt      = "failed to sign token: %w"
)
