package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/internal/repository"
)

type mockUserRepo struct {
	items   map[int64]*models.User
	nextID  int64
	created int
	updated []models.UserPatch
	deleted []int64
}

func newMockUserRepo(users ...models.User) *mockUserRepo {
	m := &mockUserRepo{items: map[int64]*models.User{}, nextID: 100}
	for i := range users {
		u := users[i]
		m.items[u.ID] = &u
	}
	return m
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.items[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	for _, u := range m.items {
		if u.ExternalID == externalID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	out := make([]models.User, 0, len(m.items))
	for _, u := range m.items {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	m.created++
	m.nextID++
	cp := *user
	cp.ID = m.nextID
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockUserRepo) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	m.updated = append(m.updated, patch)
	u := m.items[id]
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Enabled != nil {
		u.Enabled = *patch.Enabled
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) (*models.User, error) {
	m.deleted = append(m.deleted, id)
	u := m.items[id]
	delete(m.items, id)
	return u, nil
}

type mockCategoryRepo struct {
	items   map[int64]*models.Category
	nextID  int64
	created int
	updated int
}

func newMockCategoryRepo(categories ...models.Category) *mockCategoryRepo {
	m := &mockCategoryRepo{items: map[int64]*models.Category{}, nextID: 10}
	for i := range categories {
		c := categories[i]
		m.items[c.ID] = &c
	}
	return m
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	if c, ok := m.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCategoryRepo) FindByPrefix(ctx context.Context, prefix string) (*models.Category, error) {
	for _, c := range m.items {
		if c.Prefix == prefix {
			cp := *c
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCategoryRepo) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, int, error) {
	out := make([]models.Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	m.created++
	m.nextID++
	cp := *category
	cp.ID = m.nextID
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	m.updated++
	c := m.items[id]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Prefix != nil {
		c.Prefix = *patch.Prefix
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) (*models.Category, error) {
	c := m.items[id]
	delete(m.items, id)
	return c, nil
}

type mockSemesterRepo struct {
	items   map[int64]*models.Semester
	nextID  int64
	created int
}

func newMockSemesterRepo(semesters ...models.Semester) *mockSemesterRepo {
	m := &mockSemesterRepo{items: map[int64]*models.Semester{}, nextID: 20}
	for i := range semesters {
		s := semesters[i]
		m.items[s.ID] = &s
	}
	return m
}

func (m *mockSemesterRepo) FindByID(ctx context.Context, id int64) (*models.Semester, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSemesterRepo) FindByYearAndType(ctx context.Context, year int, semesterType models.SemesterType) (*models.Semester, error) {
	for _, s := range m.items {
		if s.Year == year && s.Type == semesterType {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSemesterRepo) List(ctx context.Context, filter models.SemesterFilter) ([]models.Semester, int, error) {
	out := make([]models.Semester, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (m *mockSemesterRepo) Create(ctx context.Context, semester *models.Semester) (*models.Semester, error) {
	m.created++
	m.nextID++
	cp := *semester
	cp.ID = m.nextID
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockSemesterRepo) Update(ctx context.Context, id int64, patch models.SemesterPatch) (*models.Semester, error) {
	s := m.items[id]
	if patch.Year != nil {
		s.Year = *patch.Year
	}
	if patch.Type != nil {
		s.Type = *patch.Type
	}
	cp := *s
	return &cp, nil
}

func (m *mockSemesterRepo) Delete(ctx context.Context, id int64) (*models.Semester, error) {
	s := m.items[id]
	delete(m.items, id)
	return s, nil
}

type mockCourseRepo struct {
	items      map[int64]*models.Course
	categoryOf map[int64]int64
	offered    map[int64]map[int64]bool
	nextID     int64
	calls      []string
}

func newMockCourseRepo(courses ...models.Course) *mockCourseRepo {
	m := &mockCourseRepo{
		items:      map[int64]*models.Course{},
		categoryOf: map[int64]int64{},
		offered:    map[int64]map[int64]bool{},
		nextID:     30,
	}
	for i := range courses {
		c := courses[i]
		m.items[c.ID] = &c
	}
	return m
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	if c, ok := m.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) FindDetailed(ctx context.Context, id int64) (*models.CourseDetail, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	detail := &models.CourseDetail{Course: *c}
	for semesterID := range m.offered[id] {
		detail.Semesters = append(detail.Semesters, models.Semester{ID: semesterID})
	}
	sort.Slice(detail.Semesters, func(i, j int) bool { return detail.Semesters[i].ID < detail.Semesters[j].ID })
	return detail, nil
}

func (m *mockCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error) {
	m.calls = append(m.calls, "list:"+filter.Category)
	return []models.CourseDetail{}, 0, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	m.calls = append(m.calls, "create")
	m.nextID++
	cp := *course
	cp.ID = m.nextID
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockCourseRepo) Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	m.calls = append(m.calls, "update")
	c := m.items[id]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Section != nil {
		c.Section = *patch.Section
	}
	if patch.Credits != nil {
		c.Credits = *patch.Credits
	}
	cp := *c
	return &cp, nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int64) (*models.Course, error) {
	m.calls = append(m.calls, "delete")
	c := m.items[id]
	delete(m.items, id)
	return c, nil
}

func (m *mockCourseRepo) SetCategory(ctx context.Context, courseID, categoryID int64) (*models.CourseCategory, error) {
	m.calls = append(m.calls, "setCategory")
	m.categoryOf[courseID] = categoryID
	return &models.CourseCategory{CourseID: courseID, CategoryID: categoryID}, nil
}

func (m *mockCourseRepo) AddSemester(ctx context.Context, courseID, semesterID int64) (*models.CourseSemester, error) {
	m.calls = append(m.calls, "addSemester")
	if m.offered[courseID] == nil {
		m.offered[courseID] = map[int64]bool{}
	}
	m.offered[courseID][semesterID] = true
	return &models.CourseSemester{CourseID: courseID, SemesterID: semesterID}, nil
}

func (m *mockCourseRepo) RemoveSemester(ctx context.Context, courseID, semesterID int64) (*models.CourseSemester, error) {
	m.calls = append(m.calls, "removeSemester")
	delete(m.offered[courseID], semesterID)
	return &models.CourseSemester{CourseID: courseID, SemesterID: semesterID}, nil
}

func (m *mockCourseRepo) OfferedIn(ctx context.Context, courseID, semesterID int64) (bool, error) {
	return m.offered[courseID][semesterID], nil
}

type mockUserCourseRepo struct {
	items   map[repository.UserCourseKey]*models.UserCourse
	rows    []models.ScheduleRow
	created int
	filter  models.UserCourseFilter
}

func newMockUserCourseRepo(items ...models.UserCourse) *mockUserCourseRepo {
	m := &mockUserCourseRepo{items: map[repository.UserCourseKey]*models.UserCourse{}}
	for i := range items {
		uc := items[i]
		m.items[keyOf(uc)] = &uc
	}
	return m
}

func keyOf(uc models.UserCourse) repository.UserCourseKey {
	return repository.UserCourseKey{UserID: uc.UserID, CourseID: uc.CourseID, SemesterID: uc.SemesterID}
}

func (m *mockUserCourseRepo) Find(ctx context.Context, key repository.UserCourseKey) (*models.UserCourse, error) {
	if uc, ok := m.items[key]; ok {
		cp := *uc
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserCourseRepo) Exists(ctx context.Context, key repository.UserCourseKey) (bool, error) {
	_, ok := m.items[key]
	return ok, nil
}

func (m *mockUserCourseRepo) List(ctx context.Context, filter models.UserCourseFilter) ([]models.UserCourse, int, error) {
	m.filter = filter
	out := []models.UserCourse{}
	for _, uc := range m.items {
		if uc.UserID == filter.UserID {
			out = append(out, *uc)
		}
	}
	return out, len(out), nil
}

func (m *mockUserCourseRepo) Create(ctx context.Context, uc *models.UserCourse) (*models.UserCourse, error) {
	m.created++
	cp := *uc
	m.items[keyOf(cp)] = &cp
	out := cp
	return &out, nil
}

func (m *mockUserCourseRepo) SetTaken(ctx context.Context, key repository.UserCourseKey, taken bool) (*models.UserCourse, error) {
	uc := m.items[key]
	uc.Taken = taken
	cp := *uc
	return &cp, nil
}

func (m *mockUserCourseRepo) Delete(ctx context.Context, key repository.UserCourseKey) (*models.UserCourse, error) {
	uc := m.items[key]
	delete(m.items, key)
	return uc, nil
}

func (m *mockUserCourseRepo) Schedule(ctx context.Context, userID int64) ([]models.ScheduleRow, error) {
	return m.rows, nil
}
