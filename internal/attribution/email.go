package attribution

import (
	"net/mail"
	"strings"
)

const emailDomainSeparatorConstant = "@"

// ExtractEmailDomain returns the lowercased domain of an address. Addresses that fail strict
// parsing still yield the text after their last "@"; only addresses without one yield false.
func ExtractEmailDomain(email string) (string, bool) {
	trimmedEmail := strings.TrimSpace(email)
	if parsedAddress, parseError := mail.ParseAddress(trimmedEmail); parseError == nil {
		trimmedEmail = parsedAddress.Address
	}
	return domainAfterLastSeparator(trimmedEmail)
}

func domainAfterLastSeparator(address string) (string, bool) {
	separatorIndex := strings.LastIndex(address, emailDomainSeparatorConstant)
	if separatorIndex < 0 {
		return "", false
	}
	domain := strings.TrimSpace(address[separatorIndex+1:])
	if len(domain) == 0 {
		return "", false
	}
	return strings.ToLower(domain), true
}
