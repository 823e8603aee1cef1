package cloudformation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/errors"
)

const (
	// maxNestingDepth bounds recursion into nested stacks.
	maxNestingDepth = 10

	nestedConcurrency = 4

	// layerHashLength is the length of the hex suffix SAM appends to the
	// logical id of the AWS::Lambda::LayerVersion it generates.
	layerHashLength = 10
)

// PhysicalIDProvider reads physical ids from the deployed CloudFormation
// stack and every nested stack below it.
type PhysicalIDProvider struct {
	client       shared.CloudFormationClientInterface
	limiter      shared.RateLimiter
	errorHandler shared.ErrorHandler
	logger       ports.Logger
}

func NewPhysicalIDProvider(
	client shared.CloudFormationClientInterface,
	limiter shared.RateLimiter,
	errorHandler shared.ErrorHandler,
	logger ports.Logger,
) (*PhysicalIDProvider, error) {
	if client == nil || limiter == nil || errorHandler == nil || logger == nil {
		return nil, errors.New(errors.CodeInternal, "cloudformation physical id provider requires client, limiter, error handler and logger")
	}
	return &PhysicalIDProvider{
		client:       client,
		limiter:      limiter,
		errorHandler: errorHandler,
		logger:       logger,
	}, nil
}

// GetPhysicalIDMapping keys root resources by logical id and nested ones by
// "<stack path>/<logical id>". SAM layers in stacks are also keyed by their
// template logical id, resolved from the hash-suffixed deployed one.
func (p *PhysicalIDProvider) GetPhysicalIDMapping(ctx context.Context, deploy domain.DeployContext, stacks []domain.Stack) (domain.PhysicalIDMapping, error) {
	if deploy.StackName == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "stack name is required to resolve physical ids",
			"Pass --stack-name or set deploy.stack_name in the config file.")
	}

	c := &collector{provider: p, mapping: domain.PhysicalIDMapping{}, layers: map[string][]string{}}
	if err := c.collect(ctx, deploy.StackName, "", 0); err != nil {
		if errors.Is(err, errors.CodeResourceNotFound) {
			return nil, errors.WrapUserFacing(err, errors.CodePhysicalIDError,
				fmt.Sprintf("stack %s does not exist", deploy.StackName),
				"Deploy the stack once before syncing it.")
		}
		return nil, err
	}
	mapping := c.mapping
	c.aliasServerlessLayers(ctx, stacks)
	p.logger.Debugf(ctx, "Resolved %d physical ids for stack %s", len(mapping), deploy.StackName)
	return mapping, nil
}

type collector struct {
	provider *PhysicalIDProvider
	mu       sync.Mutex
	mapping  domain.PhysicalIDMapping
	// layers holds deployed AWS::Lambda::LayerVersion logical ids per stack path.
	layers   map[string][]string
}

type nestedStack struct {
	physicalID string
	path       string
}

// collect lists one stack and then its nested stacks concurrently.
func (c *collector) collect(ctx context.Context, stackName, stackPath string, depth int) error {
	if depth > maxNestingDepth {
		return errors.New(errors.CodeNestedStackError, fmt.Sprintf("nested stacks deeper than %d levels under %s", maxNestingDepth, stackPath))
	}

	children, err := c.listStack(ctx, stackName, stackPath)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nestedConcurrency)
	for _, child := range children {
		g.Go(func() error {
			c.provider.logger.Debugf(gctx, "Descending into nested stack %s", child.path)
			return c.collect(gctx, child.physicalID, child.path, depth+1)
		})
	}
	return g.Wait()
}

func (c *collector) listStack(ctx context.Context, stackName, stackPath string) ([]nestedStack, error) {
	p := c.provider
	var children []nestedStack

	paginator := cloudformation.NewListStackResourcesPaginator(p.client, &cloudformation.ListStackResourcesInput{
		StackName: aws.String(stackName),
	})
	for paginator.HasMorePages() {
		if err := p.limiter.Wait(ctx, p.logger); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, p.errorHandler.Handle("CloudFormation", "ListStackResources", err, ctx)
		}

		c.mu.Lock()
		for _, summary := range page.StackResourceSummaries {
			logicalID := aws.ToString(summary.LogicalResourceId)
			physicalID := aws.ToString(summary.PhysicalResourceId)
			if logicalID == "" || physicalID == "" {
				continue
			}
			id := domain.NewResourceIdentifier(stackPath, logicalID)
			c.mapping[id.String()] = physicalID

			switch aws.ToString(summary.ResourceType) {
			case domain.TypeCloudFormationStack:
				children = append(children, nestedStack{physicalID: physicalID, path: id.String()})
			case domain.TypeLambdaLayerVersion:
				c.layers[stackPath] = append(c.layers[stackPath], logicalID)
			}
		}
		c.mu.Unlock()
	}
	return children, nil
}

// aliasServerlessLayers maps each AWS::Serverless::LayerVersion without a
// direct entry to the single deployed layer named <logical id><hash>.
// Ambiguous matches are left out.
func (c *collector) aliasServerlessLayers(ctx context.Context, stacks []domain.Stack) {
	for _, stack := range stacks {
		path := stack.StackPath()
		for logicalID, res := range stack.Resources {
			if res.Type != domain.TypeServerlessLayerVersion {
				continue
			}
			id := stack.Identifier(logicalID).String()
			if _, ok := c.mapping[id]; ok {
				continue
			}

			var matches []string
			for _, deployed := range c.layers[path] {
				if isHashedLayerID(deployed, logicalID) {
					matches = append(matches, deployed)
				}
			}
			switch len(matches) {
			case 0:
			case 1:
				c.mapping[id] = c.mapping[domain.NewResourceIdentifier(path, matches[0]).String()]
			default:
				c.provider.logger.Warnf(ctx, "Layer %s matches %d deployed layers %v, not guessing", id, len(matches), matches)
			}
		}
	}
}

func isHashedLayerID(deployed, logicalID string) bool {
	suffix, ok := strings.CutPrefix(deployed, logicalID)
	if !ok || len(suffix) != layerHashLength {
		return false
	}
	for _, r := range suffix {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

var _ ports.PhysicalIDProvider = (*PhysicalIDProvider)(nil)
