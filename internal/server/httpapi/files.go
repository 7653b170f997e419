package httpapi

import (
	"encoding/json"
	"net/http"
)

func handlePresignUpload(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req struct {
			ContentType string `json:"contentType"`
			Size        int64  `json:"size"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		key, url, err := deps.Files.GetPresignedPutUrl(r.Context(), req.ContentType, req.Size)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
	}
}

func handlePresignGet(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req struct {
			Key string `json:"key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Key == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "key is required")
			return
		}

		url, err := deps.Files.GetPresignedGetUrl(r.Context(), req.Key)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}
