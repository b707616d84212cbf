package cms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/engine"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/repocheck"
)

// Rule names, as they appear in reports.
const (
	RuleBackendExists      = "backendExists"
	RuleValidBackend       = "validBackend"
	RuleRepoExists         = "repoExists"
	RuleCollectionsExist   = "collectionsExist"
	RuleValidateCollection = "validateCollection"
)

// Backend kinds the CMS recognises.
const (
	BackendGitHub     = "github"
	BackendGitGateway = "git-gateway"
	BackendTestRepo   = "test-repo"
)

// Collection types offered when a collection has neither files nor folder.
const (
	CollectionFiles  = "files"
	CollectionFolder = "folder"
)

// BackendNames lists the recognised backend kinds in prompt order.
func BackendNames() []string {
	return []string{BackendGitHub, BackendGitGateway, BackendTestRepo}
}

// RepoChecker reports whether a remote repository identified by "owner/name"
// exists.
type RepoChecker interface {
	Exists(ctx context.Context, repo string) (bool, error)
}

// Option configures the rule set.
type Option func(*ruleSet)

// WithRepoChecker enables the remote existence check of the repo rule.
// Without a checker only the identifier syntax is verified.
func WithRepoChecker(checker RepoChecker) Option {
	return func(rs *ruleSet) {
		rs.checker = checker
	}
}

// WithLogger sets the logger used for lookup warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(rs *ruleSet) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

type ruleSet struct {
	checker RepoChecker
	logger  *slog.Logger
}

// Rules returns the ordered rule set.
func Rules(opts ...Option) []engine.Rule {
	rs := &ruleSet{logger: slog.Default()}

	for _, apply := range opts {
		apply(rs)
	}

	return []engine.Rule{
		engine.NewRule(RuleBackendExists, backendExists),
		engine.NewRule(RuleValidBackend, validBackend),
		engine.NewRule(RuleRepoExists, rs.repoExists),
		engine.NewRule(RuleCollectionsExist, collectionsExist),
		engine.NewRule(RuleValidateCollection, validateCollection),
	}
}

func backendExists(_ context.Context, n node.Node, path node.Path) (*engine.Outcome, error) {
	if !path.IsRoot() {
		return engine.Inapplicable()
	}

	if !n.Has("backend") {
		return engine.Fail("The config has no backend settings!",
			func(context.Context, engine.InputProvider) (node.Node, error) {
				return n.WithField("backend", node.NewMapping()), nil
			})
	}

	return engine.Pass("The config has backend settings.")
}

func validBackend(_ context.Context, n node.Node, path node.Path) (*engine.Outcome, error) {
	if !path.Is("backend") {
		return engine.Inapplicable()
	}

	name := n.FieldText("name")
	for _, valid := range BackendNames() {
		if name == valid {
			return engine.Pass("The chosen backend is valid.")
		}
	}

	return engine.Fail("The backend is not set or is unknown!",
		func(ctx context.Context, input engine.InputProvider) (node.Node, error) {
			choice, err := input.RequestChoice(ctx, "Please choose a backend:", BackendNames())
			if err != nil {
				return node.Node{}, fmt.Errorf("choosing backend: %w", err)
			}

			return n.WithField("name", node.String(choice)), nil
		})
}

func (rs *ruleSet) repoExists(ctx context.Context, n node.Node, path node.Path) (*engine.Outcome, error) {
	if !path.Is("backend") || n.FieldText("name") != BackendGitHub {
		return engine.Inapplicable()
	}

	requestRepo := func(ctx context.Context, input engine.InputProvider) (node.Node, error) {
		repo, err := input.RequestText(ctx, `Please enter the name of your GitHub repo, in the form "user/repo".`)
		if err != nil {
			return node.Node{}, fmt.Errorf("requesting repo: %w", err)
		}

		return n.WithField("repo", node.String(repo)), nil
	}

	repo := n.FieldText("repo")
	if !validRepoName(repo) {
		return engine.Fail("The backend does not have a valid repo name set!", requestRepo)
	}

	if rs.checker == nil {
		return engine.Pass("The backend has a valid repo set.")
	}

	exists, err := rs.checker.Exists(ctx, repo)
	if err != nil {
		rs.logger.Warn("could not verify repository, skipping existence check",
			slog.String("repo", repo),
			slog.String("error", err.Error()),
		)

		return engine.Inapplicable()
	}

	if !exists {
		return engine.Fail(fmt.Sprintf("The repo %q does not exist - please enter another.", repo), requestRepo)
	}

	return engine.Pass("The backend has a valid repo set.")
}

func validRepoName(repo string) bool {
	_, _, err := repocheck.ParseRepo(repo)

	return err == nil
}

func collectionsExist(_ context.Context, n node.Node, path node.Path) (*engine.Outcome, error) {
	if !path.IsRoot() {
		return engine.Inapplicable()
	}

	collections, ok := n.Get("collections")

	switch {
	case !ok || collections.Blank() || (!collections.IsScalar() && collections.Len() == 0):
		return engine.Fail("There are no collections defined!",
			func(context.Context, engine.InputProvider) (node.Node, error) {
				return n.WithField("collections", node.NewSequence(node.NewMapping())), nil
			})
	case !collections.IsSequence():
		return engine.Fail("The collections setting must be a list!", nil)
	default:
		return engine.Pass("There is at least one collection defined.")
	}
}

func validateCollection(_ context.Context, n node.Node, path node.Path) (*engine.Outcome, error) {
	if path.Len() != 2 || path.At(0) != node.Field("collections") || !path.At(1).IsIndex() {
		return engine.Inapplicable()
	}

	if !n.IsMapping() {
		return engine.Fail("The collection is not a set of properties!",
			func(context.Context, engine.InputProvider) (node.Node, error) {
				return node.NewMapping(), nil
			})
	}

	name := n.FieldText("name")
	label := n.FieldText("label")

	if !n.FieldSet("name") {
		message := "The collection has no name!"
		if label != "" {
			message = fmt.Sprintf("The collection with the label %q has no name!", label)
		}

		return engine.Fail(message, askField(n, "name", "Please enter a name for the collection:"))
	}

	if !n.FieldSet("label") {
		return engine.Fail(fmt.Sprintf("The collection %q has no label!", name),
			askField(n, "label", "Please enter a label for this collection:"))
	}

	hasFiles := n.FieldSet(CollectionFiles)
	hasFolder := n.FieldSet(CollectionFolder)

	switch {
	case !hasFiles && !hasFolder:
		return engine.Fail(fmt.Sprintf(`The collection %q has no "folder" or "files"!`, name), chooseCollectionType(n))
	case hasFiles && hasFolder:
		return engine.Fail(fmt.Sprintf(`The collection %q has both "folder" and "files"!`, name), keepOneCollectionType(n))
	default:
		return engine.Pass("Collection has required properties.")
	}
}

func askField(n node.Node, field, prompt string) engine.Remediation {
	return func(ctx context.Context, input engine.InputProvider) (node.Node, error) {
		value, err := input.RequestText(ctx, prompt)
		if err != nil {
			return node.Node{}, fmt.Errorf("requesting %s: %w", field, err)
		}

		return n.WithField(field, node.String(value)), nil
	}
}

func chooseCollectionType(n node.Node) engine.Remediation {
	return func(ctx context.Context, input engine.InputProvider) (node.Node, error) {
		kind, err := input.RequestChoice(ctx, "Please choose a collection type:", []string{CollectionFiles, CollectionFolder})
		if err != nil {
			return node.Node{}, fmt.Errorf("choosing collection type: %w", err)
		}

		switch kind {
		case CollectionFolder:
			return askField(n, CollectionFolder, "Please enter the path to the folder:")(ctx, input)
		case CollectionFiles:
			return n.WithField(CollectionFiles, node.NewSequence()), nil
		default:
			return n, nil
		}
	}
}

func keepOneCollectionType(n node.Node) engine.Remediation {
	return func(ctx context.Context, input engine.InputProvider) (node.Node, error) {
		keep, err := input.RequestChoice(ctx, "A collection uses either files or a folder. Which one should be kept?",
			[]string{CollectionFiles, CollectionFolder})
		if err != nil {
			return node.Node{}, fmt.Errorf("choosing collection type: %w", err)
		}

		switch keep {
		case CollectionFiles:
			return n.Without(CollectionFolder), nil
		case CollectionFolder:
			return n.Without(CollectionFiles), nil
		default:
			return n, nil
		}
	}
}
