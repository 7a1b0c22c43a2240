package mailer

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is the HTTP mail relay. It accepts transactional email requests
// from the studio API and hands them to the SMTP sender.
type Server struct {
	sender          MailSender
	feedbackBaseURL string
	logger          *zap.Logger
}

// NewServer creates a relay Server.
func NewServer(sender MailSender, feedbackBaseURL string, logger *zap.Logger) *Server {
	return &Server{sender: sender, feedbackBaseURL: feedbackBaseURL, logger: logger}
}

// Router builds the relay's gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/send-email", s.sendBookingEmail)
	r.POST("/send-status-email", s.sendStatusEmail)
	return r
}

type bookingEmailRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	EventDate string `json:"eventDate"`
}

func (s *Server) sendBookingEmail(c *gin.Context) {
	var req bookingEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg := BookingReceivedMessage(req.Email, req.Name, req.EventDate)
	if err := s.sender.Send(msg); err != nil {
		s.logger.Error("failed to send booking email", zap.String("to", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	s.logger.Info("booking email sent", zap.String("to", req.Email))
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func (s *Server) sendStatusEmail(c *gin.Context) {
	// Status is checked as a raw value so a missing or non-string status is
	// rejected before any rendering.
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status, ok := raw["status"].(string)
	if !ok || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing status value"})
		return
	}

	name, _ := raw["name"].(string)
	email, _ := raw["email"].(string)
	servicePackage, _ := raw["package"].(string)

	msg := StatusChangedMessage(email, name, status, servicePackage, s.feedbackBaseURL)
	if err := s.sender.Send(msg); err != nil {
		s.logger.Error("failed to send status email",
			zap.String("to", email),
			zap.String("status", status),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	s.logger.Info("status email sent", zap.String("to", email), zap.String("status", status))
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}
