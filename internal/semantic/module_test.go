package semantic

import "testing"

func TestModuleOfIdentifier(t *testing.T) {
	m, ok := ModuleOfIdentifier([]string{"norisk", "client", "install"})
	if !ok {
		t.Fatalf("expected ok")
	}
	if m.ModuleName != "norisk" {
		t.Errorf("ModuleName = %q, want \"norisk\"", m.ModuleName)
	}
	if len(m.Subclasses) != 2 || m.Subclasses[0] != "client" || m.Subclasses[1] != "install" {
		t.Errorf("Subclasses = %v, want [client install]", m.Subclasses)
	}
}

func TestModuleOfIdentifierEmpty(t *testing.T) {
	if _, ok := ModuleOfIdentifier(nil); ok {
		t.Errorf("expected ok=false for empty identifier")
	}
}

func TestModuleOfHiera(t *testing.T) {
	m, param, ok, err := ModuleOfHiera("norisk::client::install::version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok")
	}
	if m.Name() != "norisk::client::install" {
		t.Errorf("module name = %q", m.Name())
	}
	if param != "version" {
		t.Errorf("param = %q, want \"version\"", param)
	}
}

func TestModuleOfHieraTooShort(t *testing.T) {
	_, _, ok, err := ModuleOfHiera("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected ok=false for a single-segment key")
	}
}

func TestModuleOfHieraInvalidCharacters(t *testing.T) {
	_, _, _, err := ModuleOfHiera("nori$k::client::version")
	if err == nil {
		t.Fatalf("expected an error for an invalid module name")
	}
	var invalid *ErrInvalidCharacters
	if !asErrInvalidCharacters(err, &invalid) {
		t.Errorf("expected *ErrInvalidCharacters, got %T", err)
	}
}

func asErrInvalidCharacters(err error, target **ErrInvalidCharacters) bool {
	e, ok := err.(*ErrInvalidCharacters)
	if ok {
		*target = e
	}
	return ok
}

func TestFilePath(t *testing.T) {
	cases := []struct {
		m    Module
		want string
	}{
		{Module{ModuleName: "norisk"}, "norisk/manifests/init.pp"},
		{Module{ModuleName: "norisk", Subclasses: []string{"client"}}, "norisk/manifests/client.pp"},
		{Module{ModuleName: "norisk", Subclasses: []string{"client", "install"}}, "norisk/manifests/client/install.pp"},
	}
	for _, c := range cases {
		if got := c.m.FilePath(); got != c.want {
			t.Errorf("FilePath(%v) = %q, want %q", c.m, got, c.want)
		}
	}
}

func TestFullFilePath(t *testing.T) {
	m := Module{ModuleName: "norisk", Subclasses: []string{"client"}}
	got := m.FullFilePath("/repo")
	want := "/repo/modules/norisk/manifests/client.pp"
	if got != want {
		t.Errorf("FullFilePath = %q, want %q", got, want)
	}
}
