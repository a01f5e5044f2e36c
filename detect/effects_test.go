package detect_test

import (
	"testing"

	"github.com/aliasvault/formcore/detect"
	"github.com/aliasvault/formcore/dom"
)

func TestAnnotateFields(t *testing.T) {
	doc := parseDoc(t, `<html><body><form>
		<input id="user" type="text" name="username">
		<input id="pass" type="password" name="password">
		<input id="pass2" type="password" name="password_confirm">
		<input id="full" type="text" name="full_name">
		<input id="totp" type="text" name="totp_code">
	</form></body></html>`)

	f := detect.New(doc, nil).Form()
	if f == nil {
		t.Fatal("Form: got nil")
	}

	// The password leaves the tree between detection and annotation; the
	// attacher must not fire for it.
	doc.Detach(f.Password)

	attached := map[detect.Role]dom.Element{}
	detect.AnnotateFields(f, func(el dom.Element, role detect.Role) {
		attached[role] = el
	})

	if attached[detect.RoleUsername] != mustSelect(t, doc, "#user") {
		t.Error("username field not annotated")
	}
	if attached[detect.RoleTotp] != mustSelect(t, doc, "#totp") {
		t.Error("totp field not annotated")
	}
	if _, ok := attached[detect.RolePassword]; ok {
		t.Error("detached password field annotated")
	}
	if _, ok := attached[detect.RolePasswordConfirm]; ok {
		t.Error("confirm field annotated, want triggerable roles only")
	}
	if _, ok := attached[detect.RoleFullName]; ok {
		t.Error("full-name field annotated, want triggerable roles only")
	}
}

func TestAnnotateFields_NilSafe(t *testing.T) {
	detect.AnnotateFields(nil, func(dom.Element, detect.Role) {
		t.Error("attacher fired for nil fields")
	})

	doc := parseDoc(t, `<html><body><form><input type="text" name="username"></form></body></html>`)
	detect.AnnotateFields(detect.New(doc, nil).Form(), nil)
}
