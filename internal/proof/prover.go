package proof

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"cryptoroast/internal/config"
)

const verifiedMarker = "Proof verified successfully"

var ErrDisabled = errors.New("proof command is not configured")

type Prover interface {
	Prove(ctx context.Context, name string) (Result, error)
}

type RoastData struct {
	Name string `json:"name"`
}

type Result struct {
	Success     bool      `json:"success"`
	IsRealProof bool      `json:"isRealProof"`
	ProofHash   string    `json:"proofHash"`
	Output      string    `json:"output"`
	RoastData   RoastData `json:"roastData"`
}

// runFunc запускает процесс и возвращает stdout, stderr и ошибку завершения.
type runFunc func(ctx context.Context, dir string, name string, args ...string) ([]byte, []byte, error)

// CommandProver запускает внешний прувер; имя передаётся последним аргументом, без shell.
type CommandProver struct {
	command []string
	dir     string
	timeout time.Duration
	logger  *slog.Logger
	run     runFunc
}

func NewCommandProver(cfg config.ProofConfig, logger *slog.Logger) *CommandProver {
	return &CommandProver{
		command: cfg.Command,
		dir:     cfg.WorkDir,
		timeout: cfg.Timeout,
		logger:  logger,
		run:     runCommand,
	}
}

func (p *CommandProver) Enabled() bool {
	return len(p.command) > 0
}

// Prove возвращает ошибку только если процесс не удалось запустить.
// Ненулевой код выхода даёт Result с Success=false.
func (p *CommandProver) Prove(ctx context.Context, name string) (Result, error) {
	if !p.Enabled() {
		return Result{}, ErrDisabled
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := append(append([]string{}, p.command[1:]...), name)
	stdout, stderr, err := p.run(ctx, p.dir, p.command[0], args...)

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && ctx.Err() == nil {
		return Result{}, fmt.Errorf("start prover: %w", err)
	}

	if p.logger != nil {
		p.logger.Info("prover finished",
			slog.String("output", string(stdout)),
			slog.Bool("failed", err != nil))
		if len(stderr) > 0 {
			p.logger.Warn("prover stderr", slog.String("stderr", string(stderr)))
		}
	}

	verified := err == nil && strings.Contains(string(stdout), verifiedMarker)
	return Result{
		Success:     verified,
		IsRealProof: verified,
		ProofHash:   proofHash(name, verified),
		Output:      string(stdout),
		RoastData:   RoastData{Name: name},
	}, nil
}

func proofHash(name string, verified bool) string {
	prefix := "0xFAILED_"
	if verified {
		prefix = "0xSP1_"
	}
	return prefix + hex.EncodeToString([]byte(name))
}

func runCommand(ctx context.Context, dir string, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
