package rest

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quanle-dev/taskboard/internal/server/services"
	"github.com/quanle-dev/taskboard/internal/server/tasks"
)

// Upload allowlists mirror the frontend's: covers are images only,
// attachments accept the wider document set.
var allowImageFileTypes = []string{"image/jpg", "image/jpeg", "image/png"}

var allowAttachmentFileTypes = append([]string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/csv",
	"text/plain",
	"application/zip",
	"application/x-zip-compressed",
}, allowImageFileTypes...)

func (s *HTTPServer) createCard(c *gin.Context) {
	var req services.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	card, err := s.cards.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (s *HTTPServer) updateCard(c *gin.Context) {
	var req *services.UpdateCardRequest
	var err error

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		req, err = s.bindMultipartUpdate(c)
	} else {
		req, err = bindJSONUpdate(c)
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if req == nil {
		// validation already wrote the response
		return
	}

	card, err := s.cards.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// bindJSONUpdate inspects the body's top-level keys and picks the update
// branch. A body carrying none of the recognized discriminators becomes a
// generic field patch.
func bindJSONUpdate(c *gin.Context) (*services.UpdateCardRequest, error) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}

	req := &services.UpdateCardRequest{}

	if v, ok := body["taskAction"]; ok {
		action := &tasks.Action{}
		if err := rebind(v, action); err != nil {
			return nil, err
		}
		req.TaskAction = action
		return req, nil
	}

	if v, ok := body["commentToAdd"].(map[string]any); ok {
		content, _ := v["content"].(string)
		if strings.TrimSpace(content) == "" {
			return nil, errors.New("comment content is required")
		}
		req.Comment = content
		return req, nil
	}

	if v, ok := body["incomingMemberInfo"]; ok {
		op := &services.MemberOp{}
		if err := rebind(v, op); err != nil {
			return nil, err
		}
		req.MemberOp = op
		return req, nil
	}

	if v, ok := body["incomingLabelInfo"]; ok {
		op := &services.LabelOp{}
		if err := rebind(v, op); err != nil {
			return nil, err
		}
		req.LabelOp = op
		return req, nil
	}

	if v, ok := body["attachmentToRemove"].(string); ok {
		req.RemoveAttachmentID = v
		return req, nil
	}

	if v, ok := body["dates"].(map[string]any); ok {
		req.Dates = v
		return req, nil
	}

	req.Fields = body
	return req, nil
}

// rebind re-marshals a decoded JSON fragment into a typed struct.
func rebind(v any, dst any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// bindMultipartUpdate handles cover and attachment uploads. A nil,nil return
// means the rejection response has already been written.
func (s *HTTPServer) bindMultipartUpdate(c *gin.Context) (*services.UpdateCardRequest, error) {
	if header, err := c.FormFile("cardCover"); err == nil {
		file, ok := s.readUpload(c, header, allowImageFileTypes)
		if !ok {
			return nil, nil
		}
		return &services.UpdateCardRequest{Cover: file}, nil
	}

	if header, err := c.FormFile("cardAttachment"); err == nil {
		file, ok := s.readUpload(c, header, allowAttachmentFileTypes)
		if !ok {
			return nil, nil
		}
		return &services.UpdateCardRequest{Attachment: file}, nil
	}

	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "no file in request"})
	return nil, nil
}

// readUpload enforces the size ceiling and content-type allowlist before any
// bytes reach the storage provider.
func (s *HTTPServer) readUpload(c *gin.Context, header *multipart.FileHeader, allowList []string) (*services.UploadedFile, bool) {
	if header.Size > s.maxUploadBytes {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "file too large"})
		return nil, false
	}

	contentType := header.Header.Get("Content-Type")
	allowed := false
	for _, t := range allowList {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "file type is invalid"})
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		s.writeError(c, err)
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes+1))
	if err != nil {
		s.writeError(c, err)
		return nil, false
	}
	if int64(len(data)) > s.maxUploadBytes {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "file too large"})
		return nil, false
	}

	return &services.UploadedFile{Filename: header.Filename, Data: data}, true
}
