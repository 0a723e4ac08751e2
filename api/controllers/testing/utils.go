package testing

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// Upload is a file part of a multipart request.
type Upload struct {
	Field    string
	Filename string
	Content  []byte
}

// PerformRequest Helper for performing requests in tests.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// PerformMultipartRequest sends fields and an optional file as multipart/form-data.
func PerformMultipartRequest(router *gin.Engine, method, path string, fields map[string]string, upload *Upload, headers map[string]string) *httptest.ResponseRecorder {
	reqBody := &bytes.Buffer{}
	writer := multipart.NewWriter(reqBody)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			panic("failed to write form field: " + err.Error())
		}
	}
	if upload != nil {
		part, err := writer.CreateFormFile(upload.Field, upload.Filename)
		if err != nil {
			panic("failed to create form file: " + err.Error())
		}
		if _, err := part.Write(upload.Content); err != nil {
			panic("failed to write form file: " + err.Error())
		}
	}
	if err := writer.Close(); err != nil {
		panic("failed to close multipart writer: " + err.Error())
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// Bearer builds the Authorization header for a token.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
