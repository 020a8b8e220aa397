package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/mock-interview/internal/interview"
	"github.com/jonathan/mock-interview/internal/types"
)

// Interviewer is the set of interview operations exposed over HTTP.
type Interviewer interface {
	Questions(ctx context.Context, sessionID, role string, level int) []types.Question
	Question(ctx context.Context, sessionID, role string, level, questionNumber int) (string, error)
	Evaluate(ctx context.Context, question, answer string) string
	FollowUps(ctx context.Context, question, answer string) []string
	Report(ctx context.Context, role string, level int, answers []types.AnswerRecord) types.Report
	UploadResume(ctx context.Context, sessionID, filename, contentType string, data []byte) error
	EvaluateResume(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// sessionID returns the caller's session key from the header, falling back to
// a session_id query or form field. Empty means the shared default slot.
func sessionID(r *http.Request) string {
	if id := r.Header.Get(types.SessionHeader); id != "" {
		return id
	}
	return r.FormValue("session_id")
}

// validatable is implemented by request bodies in the types package.
type validatable interface {
	Validate() error
}

// decodeRequest reads a JSON body into req and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleQuestions generates the whole question batch for an interview.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.QuestionsRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	questions := s.interview.Questions(r.Context(), sessionID(r), req.Role, req.Level)
	s.jsonResponse(w, http.StatusOK, types.QuestionsResponse{Questions: questions})
}

// handleQuestion generates one resume-tailored question.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var req types.QuestionRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	question, err := s.interview.Question(r.Context(), sessionID(r), req.Role, req.Level, req.QuestionNumber)
	if err != nil {
		if errors.Is(err, interview.ErrResumeRequired) {
			s.jsonResponse(w, http.StatusBadRequest, types.QuestionResponse{Question: interview.MsgResumeRequired})
			return
		}
		log.Printf("[interview] question failed: %v", err)
		s.jsonResponse(w, HTTPStatus(err), types.QuestionResponse{Question: interview.MsgServerError})
		return
	}
	s.jsonResponse(w, http.StatusOK, types.QuestionResponse{Question: question})
}

// handleEvaluate scores one answer.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	result := s.interview.Evaluate(r.Context(), req.Question, req.Answer)
	s.jsonResponse(w, http.StatusOK, types.EvaluateResponse{Result: result})
}

// handleFollowUps asks for clarifying questions about an answer.
func (s *Server) handleFollowUps(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	followUps := s.interview.FollowUps(r.Context(), req.Question, req.Answer)
	s.jsonResponse(w, http.StatusOK, types.FollowUpsResponse{FollowUps: followUps})
}

// handleReport builds the end-of-session report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req types.ReportRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	report := s.interview.Report(r.Context(), req.Role, req.Level, req.Answers)
	s.jsonResponse(w, http.StatusOK, types.ReportResponse{
		Report:  report.HTMLBody,
		Roadmap: report.RoadmapHTML,
		Score:   report.AverageScore,
	})
}

// handleUploadResume stores the resume text for the caller's session.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	filename, contentType, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	if err := s.interview.UploadResume(r.Context(), sessionID(r), filename, contentType, data); err != nil {
		log.Printf("[resume] upload failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, types.MessageResponse{Message: interview.MsgResumeUploaded})
}

// handleEvaluateResume critiques an uploaded resume without storing it.
func (s *Server) handleEvaluateResume(w http.ResponseWriter, r *http.Request) {
	filename, contentType, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	result, err := s.interview.EvaluateResume(r.Context(), filename, contentType, data)
	if err != nil {
		log.Printf("[resume] evaluation failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ResumeEvaluationResponse{Result: result})
}

// readUpload reads the multipart "resume" field, writing the error response
// itself when the upload is missing or too large.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (filename, contentType string, data []byte, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, errorMessage(err))
			return "", "", nil, false
		}
		s.errorResponse(w, http.StatusBadRequest, interview.MsgNoFile)
		return "", "", nil, false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		log.Printf("[resume] failed to read upload: %v", err)
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return "", "", nil, false
	}
	return header.Filename, header.Header.Get("Content-Type"), data, true
}
