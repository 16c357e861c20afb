package probe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// verify classifies resp against the endpoint contract for check.
func verify(check Check, resp *response) Result {
	res := Result{Check: check.Name, Status: resp.status, Bytes: len(resp.body)}

	fail := func(format string, args ...any) Result {
		res.Outcome = OutcomeFailed
		res.Reason = fmt.Sprintf(format, args...)
		return res
	}

	if ct := resp.header.Get("Content-Type"); ct != contentTypeJSON {
		return fail("content type %q, want %q", ct, contentTypeJSON)
	}
	if resp.header.Get(allowOriginHdr) == "" {
		return fail("missing %s header", allowOriginHdr)
	}

	body := strings.TrimSpace(string(resp.body))

	if check.Invalid {
		if body != invalidTypeBody {
			return fail("invalid type answered %q", truncate(body))
		}
		if resp.status != http.StatusOK && resp.status != http.StatusBadRequest {
			return fail("invalid type answered status %d", resp.status)
		}
		res.Outcome = OutcomeOK
		return res
	}

	switch {
	case body == fileNotFoundBody:
		res.Outcome = OutcomeMissing
		return res
	case resp.status != http.StatusOK:
		return fail("status %d", resp.status)
	case body == invalidTypeBody:
		return fail("known dataset rejected as invalid type")
	case !json.Valid(resp.body):
		return fail("dataset body is not valid JSON")
	}

	res.Outcome = OutcomeOK
	return res
}

func truncate(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
