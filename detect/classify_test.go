package detect_test

import (
	"testing"

	"github.com/aliasvault/formcore/detect"
)

func classifyInput(t *testing.T, attrs string) detect.Role {
	t.Helper()
	doc := parseDoc(t, `<html><body><form><input `+attrs+`></form></body></html>`)
	return detect.Classify(mustSelect(t, doc, "input"))
}

func TestClassify_Heuristics(t *testing.T) {
	tests := []struct {
		name  string
		attrs string
		want  detect.Role
	}{
		{"password type", `type="password" name="pw"`, detect.RolePassword},
		{"password confirm", `type="password" name="password_confirm"`, detect.RolePasswordConfirm},
		{"password retype", `type="password" id="retype-password"`, detect.RolePasswordConfirm},
		{"autocomplete username", `type="text" autocomplete="username"`, detect.RoleUsername},
		{"autocomplete current-password on text", `type="text" autocomplete="current-password"`, detect.RolePassword},
		{"autocomplete one-time-code", `type="text" autocomplete="one-time-code"`, detect.RoleTotp},
		{"autocomplete name", `type="text" autocomplete="name"`, detect.RoleFullName},
		{"email type", `type="email" name="contact"`, detect.RoleEmail},
		{"email name pattern", `type="text" name="user_email"`, detect.RoleEmail},
		{"dutch login despite autocomplete off", `type="text" name="login_form_user" autocomplete="off"`, detect.RoleUsername},
		{"login name pattern", `type="text" id="loginField"`, detect.RoleUsername},
		{"dutch username", `type="text" name="gebruikersnaam"`, detect.RoleUsername},
		{"full name", `type="text" name="full_name"`, detect.RoleFullName},
		{"bare name", `type="text" name="name"`, detect.RoleFullName},
		{"bare name beside surname hint", `type="text" name="name" placeholder="Surname optional"`, detect.RoleFullName},
		{"surname alone", `type="text" name="surname"`, detect.RoleNone},
		{"filename not a name", `type="text" name="filename"`, detect.RoleNone},
		{"totp name pattern", `type="text" name="totp_code"`, detect.RoleTotp},
		{"totp structural tel", `type="tel" maxlength="6" aria-label="Enter verification code"`, detect.RoleTotp},
		{"totp structural number", `type="number" maxlength="8" placeholder="2FA code"`, detect.RoleTotp},
		{"long maxlength not totp", `type="tel" maxlength="20" aria-label="verification code"`, detect.RoleNone},
		{"maxlength without wording not totp", `type="tel" maxlength="6" name="extension"`, detect.RoleNone},
		{"remember-me excluded", `type="text" name="remember_user"`, detect.RoleNone},
		{"session excluded", `type="text" name="session_duration"`, detect.RoleNone},
		{"csrf excluded", `type="text" name="csrf_token_login"`, detect.RoleNone},
		{"hidden excluded", `type="hidden" name="username"`, detect.RoleNone},
		{"checkbox excluded", `type="checkbox" name="remember"`, detect.RoleNone},
		{"plain text", `type="text" name="street"`, detect.RoleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyInput(t, tt.attrs); got != tt.want {
				t.Errorf("Classify: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_NonInput(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="subject" name="password"></div></body></html>`)
	if got := detect.Classify(mustSelect(t, doc, "#subject")); got != detect.RoleNone {
		t.Errorf("Classify(div): got %v, want RoleNone", got)
	}
}

func TestUnwrap_CustomElementWrapper(t *testing.T) {
	doc := parseDoc(t, `<html><body><form>
		<custom-input id="wrapper"><div><input id="inner" type="password" name="pw"></div></custom-input>
	</form></body></html>`)

	wrapper := mustSelect(t, doc, "#wrapper")
	inner := mustSelect(t, doc, "#inner")
	if got := detect.Unwrap(wrapper); got != inner {
		t.Errorf("Unwrap: got %v, want the inner input", got)
	}
	if got := detect.Classify(detect.Unwrap(wrapper)); got != detect.RolePassword {
		t.Errorf("Classify(unwrapped): got %v, want RolePassword", got)
	}
}

func TestUnwrap_MultipleInputsNotUnwrapped(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<my-form id="wrapper"><input type="text"><input type="password"></my-form>
	</body></html>`)

	wrapper := mustSelect(t, doc, "#wrapper")
	if got := detect.Unwrap(wrapper); got != wrapper {
		t.Error("Unwrap: wrapper with two inputs should not unwrap")
	}
}

func TestFindFields_RolesAssignedOnce(t *testing.T) {
	doc := parseDoc(t, `<html><body><form id="f">
		<input id="u1" type="text" name="username">
		<input id="u2" type="text" name="username_again">
		<input id="p1" type="password" name="password">
	</form></body></html>`)

	fields := detect.FindFields(mustSelect(t, doc, "#f"), nil)
	if fields.Username != mustSelect(t, doc, "#u1") {
		t.Error("FindFields: first username in document order should win")
	}
	if fields.Password != mustSelect(t, doc, "#p1") {
		t.Error("FindFields: password not found")
	}
}

func TestFindFields_WrapperDeduplicated(t *testing.T) {
	doc := parseDoc(t, `<html><body><form id="f">
		<fancy-field><input id="inner" type="password" name="pw"></fancy-field>
	</form></body></html>`)

	fields := detect.FindFields(mustSelect(t, doc, "#f"), nil)
	if fields.Password != mustSelect(t, doc, "#inner") {
		t.Error("FindFields: wrapper should classify as its inner input")
	}
	if fields.PasswordConfirm != nil {
		t.Error("FindFields: wrapper must not produce a duplicate field")
	}
}

func TestFindFields_Birthdate(t *testing.T) {
	doc := parseDoc(t, `<html><body><form id="f">
		<input type="text" name="username">
		<select id="d" name="birth_day"></select>
		<select id="m" name="birth_month"></select>
		<select id="y" name="birth_year"></select>
	</form></body></html>`)

	fields := detect.FindFields(mustSelect(t, doc, "#f"), nil)
	if fields.Birthdate.Day != mustSelect(t, doc, "#d") ||
		fields.Birthdate.Month != mustSelect(t, doc, "#m") ||
		fields.Birthdate.Year != mustSelect(t, doc, "#y") {
		t.Error("FindFields: day/month/year selects not detected")
	}

	doc = parseDoc(t, `<html><body><form id="f">
		<input type="text" name="username">
		<input id="bd" type="date" name="birthdate">
	</form></body></html>`)
	fields = detect.FindFields(mustSelect(t, doc, "#f"), nil)
	if fields.Birthdate.Single != mustSelect(t, doc, "#bd") {
		t.Error("FindFields: single birthdate input not detected")
	}
}
