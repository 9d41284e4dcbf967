package httpmsg

import "testing"

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		code               StatusCode
		ok, userErr, srvErr bool
	}{
		{199, false, false, false},
		{200, true, false, false},
		{299, true, false, false},
		{300, false, false, false},
		{400, false, true, false},
		{499, false, true, false},
		{500, false, false, true},
		{599, false, false, true},
		{600, false, false, false},
	}
	for _, c := range cases {
		if got := c.code.IsOK(); got != c.ok {
			t.Errorf("%d.IsOK() = %v, want %v", c.code, got, c.ok)
		}
		if got := c.code.IsUserErr(); got != c.userErr {
			t.Errorf("%d.IsUserErr() = %v, want %v", c.code, got, c.userErr)
		}
		if got := c.code.IsServerErr(); got != c.srvErr {
			t.Errorf("%d.IsServerErr() = %v, want %v", c.code, got, c.srvErr)
		}
	}
}

func TestStatusPhrase(t *testing.T) {
	if p := StatusOK.Phrase(); p != "OK" {
		t.Fatalf("Phrase(200) = %q, want OK", p)
	}
	if p := StatusCode(999).Phrase(); p != "?" {
		t.Fatalf("Phrase(999) = %q, want ?", p)
	}
}
