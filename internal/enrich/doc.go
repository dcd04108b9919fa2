// Package enrich fills in company profile metadata that EDGAR facts
// payloads lack: a short description from the Wikipedia REST summary
// API and the official website from the SEC submissions endpoint.
//
// Wikipedia text is CC BY-SA 3.0; the source URL is kept alongside the
// description so attribution can be displayed.
package enrich
