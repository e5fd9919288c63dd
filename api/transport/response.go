package transport

// Envelope wraps every API response. Error responses carry the machine code
// from the domain error taxonomy so clients can branch without parsing the
// message text.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{Status: "error", Code: code, Error: err, Meta: meta}
}

// NotificationMeta flags responses whose lifecycle change persisted while the
// notification dispatch failed. Nil when dispatch succeeded, so the meta key
// is absent from the common case.
func NotificationMeta(failed bool) interface{} {
	if !failed {
		return nil
	}
	return map[string]bool{"notification_failed": true}
}
