package handler

const (
	msgLoginShape        = "Both username and password must be provided as strings."
	msgVerifyShape       = "Token is required in request body."
	msgIssueTokenFail    = "failed to issue token"
	msgUserProfileData   = "User profile data"
	msgAdminDashboard    = "Admin dashboard data"
	msgLoginSucceeded    = "login succeeded for %q (%s)"
	msgVerifyRejectedFmt = "token verification failed: %v"
)
