package platsch

import "testing"

func TestHandoffReportsExecFailure(t *testing.T) {
	var c *Context

	err := c.Handoff("/nonexistent/init", []string{"platsch", "extra"})
	if err == nil {
		t.Fatal("expected an error for a missing init")
	}
}
