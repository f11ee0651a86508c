package fakeapi

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

// resourceSpec describes one collection endpoint family.
type resourceSpec struct {
	path     string
	listKey  string
	itemKey  string
	coll     func(s *Server) *collection
	required []string
	defaults func() record
	validate func(fields record) string
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("GET /api/auth/me", s.authed(func(w http.ResponseWriter, r *http.Request, u models.User) {
		writeData(w, http.StatusOK, map[string]any{"user": u})
	}))

	specs := []resourceSpec{
		{
			path: "/api/projects", listKey: "projects", itemKey: "project",
			coll:     func(s *Server) *collection { return s.projects },
			required: []string{"title", "description"},
			defaults: func() record { return record{"tags": []any{}, "status": "active"} },
			validate: enum("status", "active", "completed", "archived"),
		},
		{
			path: "/api/posts", listKey: "posts", itemKey: "post",
			coll:     func(s *Server) *collection { return s.posts },
			required: []string{"title", "content"},
			defaults: func() record { return record{"tags": []any{}, "status": "draft", "views": 0} },
			validate: enum("status", "draft", "published"),
		},
		{
			path: "/api/skills", listKey: "skills", itemKey: "skill",
			coll:     func(s *Server) *collection { return s.skills },
			required: []string{"name", "category"},
			defaults: func() record { return record{"level": 0} },
			validate: skillLevel,
		},
		{
			path: "/api/certificates", listKey: "certificates", itemKey: "certificate",
			coll:     func(s *Server) *collection { return s.certificates },
			required: []string{"title", "issuer", "issue_date"},
			defaults: func() record { return record{} },
		},
	}
	for _, spec := range specs {
		s.mountResource(mux, spec)
	}

	mux.HandleFunc("POST /api/posts/{id}/increment-views", s.incrementViews)
	mux.HandleFunc("GET /api/skills/category", s.skillsByCategory)
	mux.HandleFunc("GET /api/certificates/issuers", s.certificatesByIssuer)
	mux.HandleFunc("GET /api/certificates/stats", s.certificateStats)
	mux.HandleFunc("GET /api/certificates/search", s.searchCertificates)
	mux.HandleFunc("GET /api/certificates/date-range", s.certificatesByDateRange)

	mux.HandleFunc("POST /api/contact", s.submitContact)
	mux.HandleFunc("GET /api/contact", s.authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		s.mu.Lock()
		items := s.messages.where(func(record) bool { return true })
		s.mu.Unlock()
		writeData(w, http.StatusOK, map[string]any{"messages": items})
	}))
	mux.HandleFunc("GET /api/contact/{id}", s.authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		s.mu.Lock()
		m, ok := s.messages.get(r.PathValue("id"))
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		writeData(w, http.StatusOK, map[string]any{"message": m})
	}))
	mux.HandleFunc("PATCH /api/contact/{id}/read", s.authed(s.setMessageStatus("read")))
	mux.HandleFunc("PATCH /api/contact/{id}/replied", s.authed(s.setMessageStatus("replied")))
	mux.HandleFunc("DELETE /api/contact/{id}", s.authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		s.mu.Lock()
		ok := s.messages.remove(r.PathValue("id"))
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		writeMessage(w, "Message deleted successfully")
	}))

	s.mountSingleton(mux, "/api/about", "about", func(s *Server) map[string]record { return s.abouts }, []string{"introduction"}, true)
	s.mountSingleton(mux, "/api/profiles", "profile", func(s *Server) map[string]record { return s.profiles }, nil, false)

	mux.HandleFunc("GET /api/dashboard", s.authed(s.dashboardStats))
	mux.HandleFunc("GET /api/dashboard/weekly-views", s.authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		writeData(w, http.StatusOK, map[string]any{"weeklyViews": []models.WeeklyViews{
			{Week: "2025-02-24", Views: 120},
			{Week: "2025-03-03", Views: 140},
			{Week: "2025-03-10", Views: 95},
		}})
	}))
	mux.HandleFunc("GET /api/dashboard/projects-timeline", s.authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		writeData(w, http.StatusOK, map[string]any{"projectsTimeline": []models.ProjectsTimeline{
			{Month: "2025-01", Created: 2, Completed: 1},
			{Month: "2025-02", Created: 1, Completed: 0},
			{Month: "2025-03", Created: 3, Completed: 2},
		}})
	}))

	return mux
}

func (s *Server) mountResource(mux *http.ServeMux, spec resourceSpec) {
	mux.HandleFunc("GET "+spec.path, func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		items, page := spec.coll(s).query(r.URL.Query())
		s.mu.Unlock()
		data := map[string]any{spec.listKey: items}
		if page != nil {
			data["pagination"] = page
		}
		writeData(w, http.StatusOK, data)
	})

	mux.HandleFunc("GET "+spec.path+"/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userId")
		s.mu.Lock()
		items := spec.coll(s).where(func(rec record) bool { return rec["user_id"] == userID })
		s.mu.Unlock()
		writeData(w, http.StatusOK, map[string]any{spec.listKey: items})
	})

	mux.HandleFunc("GET "+spec.path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		rec, ok := spec.coll(s).get(r.PathValue("id"))
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, spec.itemKey+" not found")
			return
		}
		writeData(w, http.StatusOK, map[string]any{spec.itemKey: rec})
	})

	mux.HandleFunc("POST "+spec.path, s.authed(func(w http.ResponseWriter, r *http.Request, u models.User) {
		fields, ok := readFields(w, r)
		if !ok {
			return
		}
		for _, f := range spec.required {
			if v, _ := fields[f].(string); v == "" {
				writeError(w, http.StatusBadRequest, f+" is required")
				return
			}
		}
		if msg := check(spec.validate, fields); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		s.mu.Lock()
		now := s.stamp()
		rec := spec.defaults()
		maps.Copy(rec, fields)
		rec["id"] = ""
		rec["user_id"] = u.ID
		rec["created_at"] = now
		rec["updated_at"] = now
		publishStamp(rec, now)
		created := spec.coll(s).add(rec)
		s.mu.Unlock()

		writeData(w, http.StatusCreated, map[string]any{spec.itemKey: created})
	}))

	mux.HandleFunc("PUT "+spec.path+"/{id}", s.authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		fields, ok := readFields(w, r)
		if !ok {
			return
		}
		if msg := check(spec.validate, fields); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		for _, immutable := range []string{"id", "user_id", "created_at", "views"} {
			delete(fields, immutable)
		}

		s.mu.Lock()
		now := s.stamp()
		fields["updated_at"] = now
		updated, found := spec.coll(s).patch(r.PathValue("id"), fields)
		if found && publishStamp(updated, now) {
			updated, _ = spec.coll(s).patch(updated["id"].(string), record{"published_at": now})
		}
		s.mu.Unlock()

		if !found {
			writeError(w, http.StatusNotFound, spec.itemKey+" not found")
			return
		}
		writeData(w, http.StatusOK, map[string]any{spec.itemKey: updated})
	}))

	mux.HandleFunc("DELETE "+spec.path+"/{id}", s.authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		s.mu.Lock()
		ok := spec.coll(s).remove(r.PathValue("id"))
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, spec.itemKey+" not found")
			return
		}
		writeMessage(w, spec.itemKey+" deleted successfully")
	}))
}

func (s *Server) mountSingleton(mux *http.ServeMux, path, key string, store func(s *Server) map[string]record, required []string, deletable bool) {
	get := func(w http.ResponseWriter, userID string) {
		s.mu.Lock()
		rec, ok := store(s)[userID]
		rec = maps.Clone(rec)
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, key+" not found")
			return
		}
		writeData(w, http.StatusOK, map[string]any{key: rec})
	}

	mux.HandleFunc("GET "+path, s.authed(func(w http.ResponseWriter, r *http.Request, u models.User) {
		get(w, u.ID)
	}))
	mux.HandleFunc("GET "+path+"/{userId}", func(w http.ResponseWriter, r *http.Request) {
		get(w, r.PathValue("userId"))
	})
	mux.HandleFunc("PUT "+path, s.authed(func(w http.ResponseWriter, r *http.Request, u models.User) {
		fields, ok := readFields(w, r)
		if !ok {
			return
		}
		for _, f := range required {
			if v, _ := fields[f].(string); v == "" {
				writeError(w, http.StatusBadRequest, f+" is required")
				return
			}
		}

		s.mu.Lock()
		now := s.stamp()
		rec, exists := store(s)[u.ID]
		if !exists {
			rec = record{"id": key + "-" + u.ID, "user_id": u.ID, "created_at": now}
		}
		maps.Copy(rec, fields)
		rec["updated_at"] = now
		store(s)[u.ID] = rec
		out := maps.Clone(rec)
		s.mu.Unlock()

		writeData(w, http.StatusOK, map[string]any{key: out})
	}))
	if deletable {
		mux.HandleFunc("DELETE "+path, s.authed(func(w http.ResponseWriter, r *http.Request, u models.User) {
			s.mu.Lock()
			_, ok := store(s)[u.ID]
			delete(store(s), u.ID)
			s.mu.Unlock()
			if !ok {
				writeError(w, http.StatusNotFound, key+" not found")
				return
			}
			writeMessage(w, key+" deleted successfully")
		}))
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	s.mu.Lock()
	a, ok := s.accounts[req.Email]
	if !ok || a.password != req.Password {
		s.mu.Unlock()
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	tok := s.issueTokenLocked(a.user.ID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"data":    map[string]any{"token": tok, "user": a.user},
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	u := s.addUserLocked(req.Email, req.Password, req.Role)
	tok := s.issueTokenLocked(u.ID)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully",
		"data":    map[string]any{"token": tok, "user": u},
	})
}

func (s *Server) incrementViews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	views, _ := rec["views"].(float64)
	if n, isInt := rec["views"].(int); isInt {
		views = float64(n)
	}
	rec, _ = s.posts.patch(r.PathValue("id"), record{"views": views + 1})
	writeData(w, http.StatusOK, map[string]any{"post": rec})
}

func (s *Server) skillsByCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	groups := map[string][]record{}
	for _, rec := range s.skills.where(func(record) bool { return true }) {
		cat, _ := rec["category"].(string)
		groups[cat] = append(groups[cat], rec)
	}
	s.mu.Unlock()
	writeData(w, http.StatusOK, map[string]any{"skillsByCategory": groups})
}

func (s *Server) certificatesByIssuer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	groups := map[string][]record{}
	for _, rec := range s.certificates.where(func(record) bool { return true }) {
		issuer, _ := rec["issuer"].(string)
		groups[issuer] = append(groups[issuer], rec)
	}
	s.mu.Unlock()
	writeData(w, http.StatusOK, map[string]any{"certificatesByIssuer": groups})
}

func (s *Server) certificateStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := s.certificates.where(func(record) bool { return true })
	year := s.now().Format("2006")
	s.mu.Unlock()

	counts := map[string]int{}
	stats := models.CertificateStats{TotalCertificates: len(all), TopIssuers: []string{}}
	for _, rec := range all {
		issuer, _ := rec["issuer"].(string)
		date, _ := rec["issue_date"].(string)
		counts[issuer]++
		if strings.HasPrefix(date, year) {
			stats.ThisYearCertificates++
		}
		if date > stats.MostRecentIssueDate {
			stats.MostRecentIssueDate = date
		}
	}
	stats.UniqueIssuers = len(counts)

	issuers := slices.Collect(maps.Keys(counts))
	slices.SortFunc(issuers, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})
	stats.TopIssuers = append(stats.TopIssuers, issuers[:min(3, len(issuers))]...)

	writeData(w, http.StatusOK, map[string]any{"stats": stats})
}

func (s *Server) searchCertificates(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("query"))
	s.mu.Lock()
	items := s.certificates.where(func(rec record) bool {
		title, _ := rec["title"].(string)
		issuer, _ := rec["issuer"].(string)
		return strings.Contains(strings.ToLower(title), q) || strings.Contains(strings.ToLower(issuer), q)
	})
	s.mu.Unlock()
	writeData(w, http.StatusOK, map[string]any{"certificates": items})
}

func (s *Server) certificatesByDateRange(w http.ResponseWriter, r *http.Request) {
	start, end := r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}
	s.mu.Lock()
	items := s.certificates.where(func(rec record) bool {
		d, _ := rec["issue_date"].(string)
		return d >= start && d <= end
	})
	s.mu.Unlock()
	writeData(w, http.StatusOK, map[string]any{"certificates": items})
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	for _, f := range []string{"name", "email", "message"} {
		if v, _ := fields[f].(string); v == "" {
			writeError(w, http.StatusBadRequest, f+" is required")
			return
		}
	}

	s.mu.Lock()
	rec := record{
		"name":       fields["name"],
		"email":      fields["email"],
		"message":    fields["message"],
		"status":     "unread",
		"created_at": s.stamp(),
	}
	created := s.messages.add(rec)
	s.mu.Unlock()

	writeData(w, http.StatusCreated, map[string]any{"message": created})
}

func (s *Server) setMessageStatus(status string) func(http.ResponseWriter, *http.Request, models.User) {
	return func(w http.ResponseWriter, r *http.Request, _ models.User) {
		s.mu.Lock()
		rec, ok := s.messages.patch(r.PathValue("id"), record{"status": status})
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		writeData(w, http.StatusOK, map[string]any{"message": rec})
	}
}

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request, _ models.User) {
	s.mu.Lock()
	stats := models.DashboardStats{
		TotalProjects:     len(s.projects.items),
		TotalPosts:        len(s.posts.items),
		TotalSkills:       len(s.skills.items),
		TotalCertificates: len(s.certificates.items),
		GrowthRates:       models.GrowthRates{ProjectsGrowth: 12.5, PostsGrowth: 8, ViewsGrowth: 23.1},
	}
	for _, p := range fromRecords[models.Post](s.posts.items) {
		stats.TotalViews += p.Views
		if p.Status == models.PostPublished {
			stats.RecentActivity.PostsPublished++
		}
	}
	stats.RecentActivity.ProjectsAdded = stats.TotalProjects
	stats.RecentActivity.SkillsAdded = stats.TotalSkills
	stats.RecentActivity.CertificatesAdded = stats.TotalCertificates
	s.mu.Unlock()

	writeData(w, http.StatusOK, map[string]any{"stats": stats})
}

func (s *Server) stamp() string {
	return s.now().Format(time.RFC3339)
}

// publishStamp sets published_at on a published post that lacks one and
// reports whether it did.
func publishStamp(rec record, now string) bool {
	if rec["status"] != "published" {
		return false
	}
	if v, _ := rec["published_at"].(string); v != "" {
		return false
	}
	if _, isPost := rec["content"]; !isPost {
		return false
	}
	rec["published_at"] = now
	return true
}

func readFields(w http.ResponseWriter, r *http.Request) (record, bool) {
	fields := record{}
	if r.ContentLength == 0 {
		return fields, true
	}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}
	return fields, true
}

func check(fn func(record) string, fields record) string {
	if fn == nil {
		return ""
	}
	return fn(fields)
}

func enum(field string, allowed ...string) func(record) string {
	return func(fields record) string {
		v, present := fields[field]
		if !present {
			return ""
		}
		if s, _ := v.(string); slices.Contains(allowed, s) {
			return ""
		}
		return field + " must be one of " + strings.Join(allowed, ", ")
	}
}

func skillLevel(fields record) string {
	v, present := fields["level"]
	if !present {
		return ""
	}
	if n, ok := v.(float64); ok && n >= 0 && n <= 100 {
		return ""
	}
	return "level must be between 0 and 100"
}
