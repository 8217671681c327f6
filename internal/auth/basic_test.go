package auth

import "testing"

func TestParseBasicAuth(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		wantUser     string
		wantPassword string
		wantCode     Code
		wantDenied   bool
	}{
		{
			name:         "valid header",
			header:       "Basic c3R1ZGVudDpzZWNyZXQx", // student:secret1
			wantUser:     "student",
			wantPassword: "secret1",
		},
		{
			name:         "scheme is case-insensitive",
			header:       "basic c3R1ZGVudDpzZWNyZXQx",
			wantUser:     "student",
			wantPassword: "secret1",
		},
		{
			name:         "scheme in mixed case",
			header:       "BaSiC c3R1ZGVudDpzZWNyZXQx",
			wantUser:     "student",
			wantPassword: "secret1",
		},
		{
			name:         "empty password",
			header:       "Basic c3R1ZGVudDo=", // student:
			wantUser:     "student",
			wantPassword: "",
		},
		{
			name:         "empty username",
			header:       "Basic OnNlY3JldDE=", // :secret1
			wantUser:     "",
			wantPassword: "secret1",
		},
		{
			name:       "empty header",
			header:     "",
			wantDenied: true,
			wantCode:   CodeMalformedHeader,
		},
		{
			name:       "one token",
			header:     "Basic",
			wantDenied: true,
			wantCode:   CodeMalformedHeader,
		},
		{
			name:       "three tokens",
			header:     "Basic c3R1ZGVudDpzZWNyZXQx extra",
			wantDenied: true,
			wantCode:   CodeMalformedHeader,
		},
		{
			name:       "bearer scheme",
			header:     "Bearer c3R1ZGVudDpzZWNyZXQx",
			wantDenied: true,
			wantCode:   CodeUnsupportedScheme,
		},
		{
			name:       "digest scheme",
			header:     "Digest c3R1ZGVudDpzZWNyZXQx",
			wantDenied: true,
			wantCode:   CodeUnsupportedScheme,
		},
		{
			name:       "invalid base64",
			header:     "Basic %%%not-base64%%%",
			wantDenied: true,
			wantCode:   CodeMalformedHeader,
		},
		{
			name:       "no colon in payload",
			header:     "Basic c3R1ZGVudHNlY3JldDE=", // studentsecret1
			wantDenied: true,
			wantCode:   CodeMalformedHeader,
		},
		{
			name:       "two colons in payload",
			header:     "Basic c3R1ZGVudDpzZWM6cmV0MQ==", // student:sec:ret1
			wantDenied: true,
			wantCode:   CodeMalformedHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, password, denial := parseBasicAuth(tt.header)
			if tt.wantDenied {
				if denial == nil {
					t.Fatalf("parseBasicAuth(%q) = (%q, %q, nil), want denial", tt.header, user, password)
				}
				if denial.Code != tt.wantCode {
					t.Errorf("denial code = %v, want %v", denial.Code, tt.wantCode)
				}
				return
			}
			if denial != nil {
				t.Fatalf("parseBasicAuth(%q) unexpected denial: %v", tt.header, denial)
			}
			if user != tt.wantUser {
				t.Errorf("username = %q, want %q", user, tt.wantUser)
			}
			if password != tt.wantPassword {
				t.Errorf("password = %q, want %q", password, tt.wantPassword)
			}
		})
	}
}

func TestParseBasicAuthSchemeCheckBeforeDecode(t *testing.T) {
	// A non-Basic scheme must be reported as such even when the payload
	// would fail to decode.
	_, _, denial := parseBasicAuth("Bearer not-base64-at-all!!!")
	if denial == nil || denial.Code != CodeUnsupportedScheme {
		t.Fatalf("denial = %v, want unsupported scheme", denial)
	}
}
