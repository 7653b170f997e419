package common

// AccessTokenHeaderName is the HTTP header used to carry the access token on
// outbound gateway requests.
const AccessTokenHeaderName = "Authorization"

// UntitledFallback is substituted for empty display titles on create.
const UntitledFallback = "Sem título"
