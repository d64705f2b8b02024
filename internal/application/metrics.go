package application

import "expvar"

// Counters published on /debug/vars.
var (
	loginSucceeded  = expvar.NewInt("auth_login_succeeded")
	loginFailed     = expvar.NewInt("auth_login_failed")
	tokensIssued    = expvar.NewInt("auth_tokens_issued")
	gateRejected    = expvar.NewInt("auth_gate_rejected")
	accountsCreated = expvar.NewInt("directory_accounts_created")
	accountsDeleted = expvar.NewInt("directory_accounts_deleted")
	uploadsSigned   = expvar.NewInt("uploads_signed")
)
