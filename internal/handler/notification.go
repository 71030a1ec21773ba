package handler

import "net/http"

type notificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

type markReadResponse struct {
	OK      bool `json:"ok"`
	Updated int  `json:"updated"`
}

// ListNotifications handles GET /api/notifications.
func (s *Server) ListNotifications(w http.ResponseWriter, r *http.Request) {
	views, unread, err := s.notifications.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]Notification, len(views))
	for i, v := range views {
		out[i] = Notification{Notification: v.Notification, Actor: refToResponse(v.Actor)}
	}
	writeJSON(w, http.StatusOK, notificationsResponse{Notifications: out, UnreadCount: unread})
}

// MarkNotificationsRead handles PUT /api/notifications.
func (s *Server) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.notifications.MarkAllRead(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, markReadResponse{OK: true, Updated: n})
}
