// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"nexusapi/internal/models"
	"nexusapi/internal/secureid"
)

// View types wrap the models for JSON output. Raw primary keys never
// appear on the wire: every view carries the encoded form instead.

type authorView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newAuthorView(ids *secureid.Codec, u *models.User) *authorView {
	if u == nil {
		return nil
	}
	return &authorView{ID: ids.Encode(u.ID), Name: u.Name, Email: u.Email}
}

type userView struct {
	ID string `json:"id"`
	models.User
}

func newUserView(ids *secureid.Codec, u *models.User) userView {
	return userView{ID: ids.Encode(u.ID), User: *u}
}

func newUserViews(ids *secureid.Codec, users []models.User) []userView {
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, newUserView(ids, &users[i]))
	}
	return out
}

type faqView struct {
	ID string `json:"id"`
	models.BlogFAQ
}

func newFAQViews(ids *secureid.Codec, faqs []models.BlogFAQ) []faqView {
	out := make([]faqView, 0, len(faqs))
	for i := range faqs {
		out = append(out, faqView{ID: ids.Encode(faqs[i].ID), BlogFAQ: faqs[i]})
	}
	return out
}

type blogView struct {
	ID string `json:"id"`
	models.Blog
	CoverPhoto *string     `json:"cover_photo"`
	Author     *authorView `json:"author,omitempty"`
	FAQs       []faqView   `json:"faqs,omitempty"`
}

func newBlogView(ids *secureid.Codec, b *models.Blog) blogView {
	return blogView{
		ID:         ids.Encode(b.ID),
		Blog:       *b,
		CoverPhoto: b.CoverPhoto,
		Author:     newAuthorView(ids, b.Author),
		FAQs:       newFAQViews(ids, b.FAQs),
	}
}

func newBlogViews(ids *secureid.Codec, blogs []models.Blog) []blogView {
	out := make([]blogView, 0, len(blogs))
	for i := range blogs {
		out = append(out, newBlogView(ids, &blogs[i]))
	}
	return out
}

type sectionView struct {
	ID string `json:"id"`
	models.Section
	Image *string `json:"image"`
}

func newSectionViews(ids *secureid.Codec, sections []models.Section) []sectionView {
	out := make([]sectionView, 0, len(sections))
	for i := range sections {
		out = append(out, sectionView{
			ID:      ids.Encode(sections[i].ID),
			Section: sections[i],
			Image:   sections[i].Image,
		})
	}
	return out
}

type disciplineRefView struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	CoverPhoto *string `json:"cover_photo,omitempty"`
	IsActive   bool    `json:"is_active"`
}

func newDisciplineRefViews(ids *secureid.Codec, disciplines []models.Discipline) []disciplineRefView {
	out := make([]disciplineRefView, 0, len(disciplines))
	for i := range disciplines {
		out = append(out, disciplineRefView{
			ID:         ids.Encode(disciplines[i].ID),
			Title:      disciplines[i].Title,
			Slug:       disciplines[i].Slug,
			CoverPhoto: disciplines[i].CoverPhoto,
			IsActive:   disciplines[i].IsActive,
		})
	}
	return out
}

type serviceView struct {
	ID string `json:"id"`
	models.Service
	CoverPhoto  *string             `json:"cover_photo"`
	Author      *authorView         `json:"author,omitempty"`
	Sections    []sectionView       `json:"sections"`
	Disciplines []disciplineRefView `json:"disciplines"`
}

func newServiceView(ids *secureid.Codec, svc *models.Service) serviceView {
	return serviceView{
		ID:          ids.Encode(svc.ID),
		Service:     *svc,
		CoverPhoto:  svc.CoverPhoto,
		Author:      newAuthorView(ids, svc.Author),
		Sections:    newSectionViews(ids, svc.Sections),
		Disciplines: newDisciplineRefViews(ids, svc.Disciplines),
	}
}

func newServiceViews(ids *secureid.Codec, services []models.Service) []serviceView {
	out := make([]serviceView, 0, len(services))
	for i := range services {
		out = append(out, newServiceView(ids, &services[i]))
	}
	return out
}

type projectView struct {
	ID string `json:"id"`
	models.Project
	CoverPhoto  *string             `json:"cover_photo"`
	Author      *authorView         `json:"author,omitempty"`
	Sections    []sectionView       `json:"sections"`
	Disciplines []disciplineRefView `json:"disciplines"`
}

func newProjectView(ids *secureid.Codec, p *models.Project) projectView {
	return projectView{
		ID:          ids.Encode(p.ID),
		Project:     *p,
		CoverPhoto:  p.CoverPhoto,
		Author:      newAuthorView(ids, p.Author),
		Sections:    newSectionViews(ids, p.Sections),
		Disciplines: newDisciplineRefViews(ids, p.Disciplines),
	}
}

func newProjectViews(ids *secureid.Codec, projects []models.Project) []projectView {
	out := make([]projectView, 0, len(projects))
	for i := range projects {
		out = append(out, newProjectView(ids, &projects[i]))
	}
	return out
}

type linkedRefView struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	CoverPhoto *string `json:"cover_photo,omitempty"`
}

type disciplineView struct {
	ID string `json:"id"`
	models.Discipline
	CoverPhoto *string         `json:"cover_photo"`
	Sections   []sectionView   `json:"sections"`
	Services   []linkedRefView `json:"services"`
	Projects   []linkedRefView `json:"projects"`
}

func newDisciplineView(ids *secureid.Codec, d *models.Discipline) disciplineView {
	v := disciplineView{
		ID:         ids.Encode(d.ID),
		Discipline: *d,
		CoverPhoto: d.CoverPhoto,
		Sections:   newSectionViews(ids, d.Sections),
		Services:   []linkedRefView{},
		Projects:   []linkedRefView{},
	}
	for i := range d.Services {
		v.Services = append(v.Services, linkedRefView{
			ID: ids.Encode(d.Services[i].ID), Title: d.Services[i].Title,
			Slug: d.Services[i].Slug, CoverPhoto: d.Services[i].CoverPhoto,
		})
	}
	for i := range d.Projects {
		v.Projects = append(v.Projects, linkedRefView{
			ID: ids.Encode(d.Projects[i].ID), Title: d.Projects[i].Title,
			Slug: d.Projects[i].Slug, CoverPhoto: d.Projects[i].CoverPhoto,
		})
	}
	return v
}

func newDisciplineViews(ids *secureid.Codec, disciplines []models.Discipline) []disciplineView {
	out := make([]disciplineView, 0, len(disciplines))
	for i := range disciplines {
		out = append(out, newDisciplineView(ids, &disciplines[i]))
	}
	return out
}

type jobRefView struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Slug     string         `json:"slug"`
	Location string         `json:"location"`
	Type     models.JobType `json:"type"`
}

type jobView struct {
	ID string `json:"id"`
	models.Job
	TypeLabel string      `json:"type_label"`
	Author    *authorView `json:"author,omitempty"`
}

func newJobView(ids *secureid.Codec, j *models.Job) jobView {
	return jobView{
		ID:        ids.Encode(j.ID),
		Job:       *j,
		TypeLabel: models.JobTypeLabels[j.Type],
		Author:    newAuthorView(ids, j.Author),
	}
}

func newJobViews(ids *secureid.Codec, jobs []models.Job) []jobView {
	out := make([]jobView, 0, len(jobs))
	for i := range jobs {
		out = append(out, newJobView(ids, &jobs[i]))
	}
	return out
}

type applicationView struct {
	ID string `json:"id"`
	models.JobApplication
	Name        string                     `json:"name"`
	StatusLabel string                     `json:"status_label"`
	Job         *jobRefView                `json:"job,omitempty"`
	Reviewer    *authorView                `json:"reviewer,omitempty"`
	NextStates  []models.ApplicationStatus `json:"next_statuses"`
}

func newApplicationView(ids *secureid.Codec, a *models.JobApplication) applicationView {
	v := applicationView{
		ID:             ids.Encode(a.ID),
		JobApplication: *a,
		Name:           a.Name(),
		StatusLabel:    models.StatusOptions[a.Status].Label,
		Reviewer:       newAuthorView(ids, a.Reviewer),
		NextStates:     models.StatusWorkflow[a.Status],
	}
	if a.Job != nil {
		v.Job = &jobRefView{
			ID: ids.Encode(a.Job.ID), Title: a.Job.Title, Slug: a.Job.Slug,
			Location: a.Job.Location, Type: a.Job.Type,
		}
	}
	return v
}

func newApplicationViews(ids *secureid.Codec, apps []models.JobApplication) []applicationView {
	out := make([]applicationView, 0, len(apps))
	for i := range apps {
		out = append(out, newApplicationView(ids, &apps[i]))
	}
	return out
}

type feedbackView struct {
	ID string `json:"id"`
	models.Feedback
	Image *string `json:"image"`
}

func newFeedbackView(ids *secureid.Codec, f *models.Feedback) feedbackView {
	return feedbackView{ID: ids.Encode(f.ID), Feedback: *f, Image: f.Image}
}

func newFeedbackViews(ids *secureid.Codec, feedbacks []models.Feedback) []feedbackView {
	out := make([]feedbackView, 0, len(feedbacks))
	for i := range feedbacks {
		out = append(out, newFeedbackView(ids, &feedbacks[i]))
	}
	return out
}

type settingView struct {
	models.Setting
	Image *string `json:"image"`
}

func newSettingView(st *models.Setting) settingView {
	return settingView{Setting: *st, Image: st.Image}
}
