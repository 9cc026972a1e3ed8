package app

import (
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	Course      repos.CourseRepo
	Lesson      repos.LessonRepo
	Quiz        repos.QuizRepo
	QuizAttempt repos.QuizAttemptRepo
	Activity    repos.ActivityRepo
}

func wireRepos(gdb *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:        repos.NewUserRepo(gdb, log),
		Course:      repos.NewCourseRepo(gdb, log),
		Lesson:      repos.NewLessonRepo(gdb, log),
		Quiz:        repos.NewQuizRepo(gdb, log),
		QuizAttempt: repos.NewQuizAttemptRepo(gdb, log),
		Activity:    repos.NewActivityRepo(gdb, log),
	}
}
