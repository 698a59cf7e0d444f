package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobmatch/internal/database"
	"github.com/vijay-prabhu/jobmatch/internal/output"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user",
	Long: `Create a user profile. Skills are comma-separated.

Examples:
  jobmatch user add --username jane --name "Jane Doe" --skills "java, react" --location Remote
  jobmatch user add --username sam --experience "junior developer" --job-type full-time`,
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE:  runUserList,
}

var userShowCmd = &cobra.Command{
	Use:   "show <id|username>",
	Short: "Show a user profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserShow,
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id|username>",
	Short: "Update a user profile",
	Long: `Update profile fields. Only flags that are passed change; pass an empty
value (e.g. --bio "") to clear a field.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserUpdate,
}

// profileFlags binds the editable profile fields
type profileFlags struct {
	fullName, username, email string
	skills, experience, bio   string
	location, jobType, salary string

	jobTitle, industries, certifications string

	years int
}

var userFlags profileFlags

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.fullName, "name", "", "Full name")
	cmd.Flags().StringVar(&f.username, "username", "", "Unique username")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.skills, "skills", "", "Comma-separated skills")
	cmd.Flags().StringVar(&f.experience, "experience", "", "Experience summary (e.g. \"senior backend engineer\")")
	cmd.Flags().StringVar(&f.bio, "bio", "", "Professional bio")
	cmd.Flags().StringVar(&f.location, "location", "", "Preferred location")
	cmd.Flags().StringVar(&f.jobType, "job-type", "", "Preferred job type (full-time, part-time, contract, remote)")
	cmd.Flags().StringVar(&f.salary, "salary", "", "Salary expectation")
	cmd.Flags().StringVar(&f.jobTitle, "title", "", "Current job title")
	cmd.Flags().StringVar(&f.industries, "industries", "", "Comma-separated industries")
	cmd.Flags().StringVar(&f.certifications, "certifications", "", "Comma-separated certifications")
	cmd.Flags().IntVar(&f.years, "years", 0, "Years of experience")
}

// apply copies every flag the user set onto u
func (f *profileFlags) apply(cmd *cobra.Command, u *database.User) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}

	set("name", &u.FullName, f.fullName)
	set("username", &u.Username, f.username)
	set("email", &u.Email, f.email)
	set("skills", &u.Skills, f.skills)
	set("experience", &u.Experience, f.experience)
	set("bio", &u.Bio, f.bio)
	set("location", &u.PreferredLocation, f.location)
	set("job-type", &u.PreferredJobType, f.jobType)
	set("salary", &u.SalaryExpectation, f.salary)
	set("title", &u.JobTitle, f.jobTitle)
	set("industries", &u.Industries, f.industries)
	set("certifications", &u.Certifications, f.certifications)

	if cmd.Flags().Changed("years") {
		years := f.years
		u.YearsExperience = &years
	}
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd, userListCmd, userShowCmd, userUpdateCmd)

	userFlags.register(userAddCmd)
	userFlags.register(userUpdateCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	u := &database.User{}
	userFlags.apply(cmd, u)

	if err := db.CreateUser(cmd.Context(), u); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return output.Output(outputFmt, u)
}

func runUserList(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := db.ListUsers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	return output.Output(outputFmt, users)
}

func runUserShow(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := findUser(cmd, db, args[0])
	if err != nil {
		return err
	}

	return output.Output(outputFmt, u)
}

func runUserUpdate(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := findUser(cmd, db, args[0])
	if err != nil {
		return err
	}

	userFlags.apply(cmd, u)

	if err := db.UpdateUser(cmd.Context(), u); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return output.Output(outputFmt, u)
}

// findUser resolves an ID or username, failing when neither matches
func findUser(cmd *cobra.Command, db *database.DB, idOrUsername string) (*database.User, error) {
	u, err := db.GetUser(cmd.Context(), idOrUsername)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user not found: %s", idOrUsername)
	}
	return u, nil
}
